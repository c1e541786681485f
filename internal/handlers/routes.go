package handlers

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the parse endpoints, the document API and the built
// front end.
func RegisterRoutes(app *fiber.App, parseHandler *ParseHandler, documentHandler *DocumentHandler, staticDir string) {
	app.Post("/parse-cv", parseHandler.HandleParseCV)
	app.Post("/upload", parseHandler.HandleUpload)

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Get("/documents/:id", documentHandler.HandleGetDocument)

	app.Static("/static", staticDir, fiber.Static{Index: "index.html"})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(staticDir, "index.html"))
	})
}

func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
