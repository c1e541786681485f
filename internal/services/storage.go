package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type StorageService interface {
	// SaveFile stores data and returns the generated file name and its location.
	SaveFile(ctx context.Context, originalName, fileType string, data []byte) (string, string, error)
	DeleteFile(ctx context.Context, filename string) error
	EnsureReady(ctx context.Context) error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureReady(ctx context.Context) error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(ctx context.Context, originalName, fileType string, data []byte) (string, string, error) {
	uniqueFilename := uniqueName(originalName, fileType)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) DeleteFile(ctx context.Context, filename string) error {
	filePath := filepath.Join(s.uploadPath, filepath.Base(filename))
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// uniqueName builds "<type>_<uuid><ext>" so stored names never collide and
// never carry user-supplied path segments.
func uniqueName(originalName, fileType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
}

// FileExtension returns the lower-cased extension without its dot.
func FileExtension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
