package handlers

import (
	"fmt"
	"io"
	"log"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-uploader/internal/models"
	"alfredoptarigan/cv-uploader/internal/services"
)

type ParseHandler struct {
	parser           services.ParserService
	maxFileSize      int64
	allowedFileTypes []string
	defaultFields    []string
}

func NewParseHandler(
	parser services.ParserService,
	maxFileSize int64,
	allowedFileTypes []string,
	defaultFields []string,
) *ParseHandler {
	return &ParseHandler{
		parser:           parser,
		maxFileSize:      maxFileSize,
		allowedFileTypes: allowedFileTypes,
		defaultFields:    defaultFields,
	}
}

// HandleParseCV handles POST /parse-cv and answers with the enveloped shape.
func (h *ParseHandler) HandleParseCV(c *fiber.Ctx) error {
	result, ferr := h.parse(c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	message := "CV parsed successfully"
	return c.JSON(models.ParseCVResponse{
		DocumentID: result.DocumentID.String(),
		Content:    result.Content,
		ExtractedData: map[string]string{
			"response": result.Response,
		},
		Status:  "success",
		Message: &message,
	})
}

// HandleUpload handles POST /upload and answers with the extracted object
// itself.
func (h *ParseHandler) HandleUpload(c *fiber.Ctx) error {
	result, ferr := h.parse(c)
	if ferr != nil {
		return respondError(c, ferr)
	}

	extracted, err := services.ExtractJSON(result.Response)
	if err != nil {
		log.Printf("❌ Unusable model reply for %s: %v\n", result.DocumentID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Model reply did not contain a JSON object",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(extracted)
}

// parse validates the upload and runs the pipeline.
func (h *ParseHandler) parse(c *fiber.Ctx) (*services.ParseResult, *fiber.Error) {
	upload, ferr := h.readUpload(c)
	if ferr != nil {
		return nil, ferr
	}

	result, err := h.parser.ParseCV(c.UserContext(), *upload)
	if err != nil {
		log.Printf("❌ Failed to parse %s: %v\n", upload.OriginalName, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Error processing CV: %v", err))
	}

	return result, nil
}

func (h *ParseHandler) readUpload(c *fiber.Ctx) (*services.Upload, *fiber.Error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Please send the CV in the 'file' field.")
	}

	if fileHeader.Size > h.maxFileSize {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("File size exceeds maximum allowed size of %d bytes", h.maxFileSize))
	}

	fileType := services.FileExtension(fileHeader.Filename)
	if !slices.Contains(h.allowedFileTypes, fileType) {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Unsupported file type. Allowed types: %s", strings.Join(h.allowedFileTypes, ", ")))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file")
	}

	fields := h.defaultFields
	if form, err := c.MultipartForm(); err == nil {
		if requested := cleanFields(form.Value["fields"]); len(requested) > 0 {
			fields = requested
		}
	}

	return &services.Upload{
		OriginalName: fileHeader.Filename,
		FileType:     fileType,
		Data:         data,
		Fields:       fields,
	}, nil
}

// cleanFields accepts both repeated values and comma separated lists.
func cleanFields(values []string) []string {
	var fields []string
	for _, value := range values {
		for _, field := range strings.Split(value, ",") {
			if field = strings.TrimSpace(field); field != "" && !slices.Contains(fields, field) {
				fields = append(fields, field)
			}
		}
	}
	return fields
}

func respondError(c *fiber.Ctx, ferr *fiber.Error) error {
	return c.Status(ferr.Code).JSON(fiber.Map{
		"error": ferr.Message,
	})
}
