package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/cv-uploader/internal/config"
	"alfredoptarigan/cv-uploader/internal/handlers"
	"alfredoptarigan/cv-uploader/internal/repositories"
	"alfredoptarigan/cv-uploader/internal/services"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	docRepo := repositories.NewDocumentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	storageService, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize storage: %v", err)
	}
	if err := storageService.EnsureReady(ctx); err != nil {
		log.Fatalf("❌ Storage is not ready: %v", err)
	}
	log.Printf("✅ Storage initialized (%s)\n", cfg.Storage.Driver)

	llm, err := newLLM(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM: %v", err)
	}
	log.Printf("✅ LLM initialized (%s)\n", cfg.LLM.Provider)

	parserService := services.NewParserService(
		docRepo,
		storageService,
		services.NewTextExtractor(),
		llm,
		cfg.LLM.MaxRetries,
	)

	// Initialize Handlers
	parseHandler := handlers.NewParseHandler(
		parserService,
		cfg.Storage.MaxFileSize,
		cfg.Storage.AllowedFileTypes,
		cfg.LLM.DefaultFields,
	)
	documentHandler := handlers.NewDocumentHandler(docRepo)
	log.Println("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:      "CV Parser API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 64*1024,
		ErrorHandler: handlers.CustomErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, parseHandler, documentHandler, cfg.Server.StaticDir)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📄 Upload page: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newStorage(ctx context.Context, cfg *config.Config) (services.StorageService, error) {
	switch cfg.Storage.Driver {
	case "local", "":
		return services.NewStorageService(cfg.Storage.UploadPath), nil
	case "s3":
		s3 := cfg.Storage.S3
		return services.NewS3StorageService(ctx, s3.Bucket, s3.Region, s3.Endpoint, s3.AccessKey, s3.SecretKey)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newLLM(ctx context.Context, cfg *config.Config) (services.LLMService, error) {
	switch cfg.LLM.Provider {
	case "ollama", "":
		return services.NewOllamaService(cfg.Ollama.Host, cfg.Ollama.Model), nil
	case "gemini":
		return services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
