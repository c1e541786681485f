package models

import (
	"time"

	"github.com/google/uuid"
)

type ParseStatus string

const (
	StatusProcessing ParseStatus = "processing"
	StatusCompleted  ParseStatus = "completed"
	StatusFailed     ParseStatus = "failed"
)

// Document is one uploaded CV and the outcome of parsing it.
type Document struct {
	ID               uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string      `gorm:"type:text" json:"filename"`
	OriginalFileName string      `gorm:"type:text" json:"original_filename"`
	FileType         string      `gorm:"type:text" json:"file_type"`
	FilePath         string      `gorm:"type:text" json:"file_path"`
	FileSize         int64       `json:"file_size"`
	Status           ParseStatus `gorm:"not null;default:'processing'" json:"status"`
	Response         *string     `gorm:"type:text" json:"response,omitempty"`
	ErrorMessage     *string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
