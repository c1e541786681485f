package services

import (
	"fmt"
	"strings"
)

var DefaultExtractFields = []string{"name", "email", "skills", "experience", "education"}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt asks the model for a JSON object holding the given
// fields of the CV.
func (pb *PromptBuilder) BuildExtractionPrompt(cvText string, fields []string) string {
	if len(fields) == 0 {
		fields = DefaultExtractFields
	}

	return fmt.Sprintf(`Analyze the following CV/resume text and extract the following information as JSON:
Fields to extract: %s

CV Text:
%s

Return only a valid JSON object with the extracted fields. If a field cannot be found,
set its value to null.`,
		strings.Join(fields, ", "), cvText)
}
