package uploader

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Transport posts one file as multipart form data and returns the raw
// response. A non-2xx status is not an error at this level.
type Transport interface {
	Post(ctx context.Context, endpoint string, file File) (int, []byte, error)
}

type httpTransport struct{}

func NewHTTPTransport() Transport {
	return &httpTransport{}
}

// Post implements Transport. The fasthttp agent has no context support, so
// cancellation is only observed before the request starts.
func (t *httpTransport) Post(ctx context.Context, endpoint string, file File) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	agent := fiber.Post(endpoint)
	agent.FileData(&fiber.FormFile{
		Fieldname: FieldName,
		Name:      file.Name,
		Content:   file.Content,
	})
	agent.MultipartForm(nil)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, nil, fmt.Errorf("failed to post %s: %w", endpoint, errors.Join(errs...))
	}

	return code, body, nil
}
