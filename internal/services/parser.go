package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/cv-uploader/internal/models"
	"alfredoptarigan/cv-uploader/internal/repositories"
)

// Upload is one CV received by the backend.
type Upload struct {
	OriginalName string
	FileType     string
	Data         []byte
	Fields       []string
}

type ParseResult struct {
	DocumentID uuid.UUID
	Content    string
	Response   string
}

type ParserService interface {
	ParseCV(ctx context.Context, upload Upload) (*ParseResult, error)
}

type parserService struct {
	docRepo       repositories.DocumentRepository
	storage       StorageService
	extractor     TextExtractor
	llm           LLMService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewParserService(
	docRepo repositories.DocumentRepository,
	storage StorageService,
	extractor TextExtractor,
	llm LLMService,
	maxRetries int,
) ParserService {
	return &parserService{
		docRepo:       docRepo,
		storage:       storage,
		extractor:     extractor,
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (p *parserService) ParseCV(ctx context.Context, upload Upload) (*ParseResult, error) {
	filename, location, err := p.storage.SaveFile(ctx, upload.OriginalName, "cv", upload.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: upload.OriginalName,
		FileType:         upload.FileType,
		FilePath:         location,
		FileSize:         int64(len(upload.Data)),
		Status:           models.StatusProcessing,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := p.docRepo.Create(&doc); err != nil {
		// Cleanup stored file if database insert fails
		if delErr := p.storage.DeleteFile(ctx, filename); delErr != nil {
			log.Printf("⚠️  Failed to clean up %s: %v\n", filename, delErr)
		}
		return nil, fmt.Errorf("failed to save document record: %w", err)
	}

	log.Printf("📄 Extracting text from %s (%s)\n", upload.OriginalName, doc.ID)
	content, err := p.extractor.ExtractText(upload.FileType, upload.Data)
	if err != nil {
		p.markFailed(doc.ID, fmt.Sprintf("Failed to extract text: %v", err))
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	prompt := p.promptBuilder.BuildExtractionPrompt(content, upload.Fields)
	log.Printf("🤖 Extracting fields with LLM, prompt length: %d characters\n", len(prompt))

	response, err := GenerateTextWithRetry(ctx, p.llm, prompt, p.maxRetries)
	if err != nil {
		p.markFailed(doc.ID, fmt.Sprintf("Failed to extract fields: %v", err))
		return nil, fmt.Errorf("failed to extract fields: %w", err)
	}

	if err := p.docRepo.UpdateResult(doc.ID, response); err != nil {
		p.markFailed(doc.ID, fmt.Sprintf("Failed to save result: %v", err))
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	log.Printf("✅ Parsed %s (%s)\n", upload.OriginalName, doc.ID)

	return &ParseResult{
		DocumentID: doc.ID,
		Content:    content,
		Response:   response,
	}, nil
}

func (p *parserService) markFailed(id uuid.UUID, msg string) {
	if err := p.docRepo.UpdateError(id, msg); err != nil {
		log.Printf("⚠️  Failed to record error for %s: %v\n", id, err)
	}
}

// ExtractJSON pulls the JSON object or array out of a model reply that may be
// wrapped in markdown fences or surrounded by prose.
func ExtractJSON(text string) (json.RawMessage, error) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj > startObj {
		text = text[startObj : endObj+1]
	} else if startArr != -1 && endArr > startArr {
		text = text[startArr : endArr+1]
	}

	text = strings.TrimSpace(text)
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("model reply is not valid JSON")
	}

	return json.RawMessage(text), nil
}
