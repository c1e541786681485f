package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-uploader/internal/models"
	"alfredoptarigan/cv-uploader/internal/repositories"
)

type DocumentHandler struct {
	docRepo repositories.DocumentRepository
}

func NewDocumentHandler(docRepo repositories.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{
		docRepo: docRepo,
	}
}

// HandleGetDocument handles GET /documents/:id
func (h *DocumentHandler) HandleGetDocument(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document not found",
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load document")
	}

	response := models.DocumentResponse{
		ID:           doc.ID.String(),
		OriginalName: doc.OriginalFileName,
		FileType:     doc.FileType,
		Status:       string(doc.Status),
	}

	if doc.Status == models.StatusCompleted {
		response.Response = doc.Response
	}

	if doc.Status == models.StatusFailed && doc.ErrorMessage != nil && *doc.ErrorMessage != "" {
		response.ErrorMessage = doc.ErrorMessage
	}

	return c.JSON(response)
}
