package models

// ParseCVResponse is the enveloped reply of POST /parse-cv.
type ParseCVResponse struct {
	DocumentID    string            `json:"document_id"`
	Content       string            `json:"content"`
	ExtractedData map[string]string `json:"extracted_data"`
	Status        string            `json:"status"`
	Message       *string           `json:"message,omitempty"`
}

type DocumentResponse struct {
	ID           string  `json:"id"`
	OriginalName string  `json:"original_name"`
	FileType     string  `json:"file_type"`
	Status       string  `json:"status"`
	Response     *string `json:"response,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}
