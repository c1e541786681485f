package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

type ollamaService struct {
	host  string
	model string
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// NewOllamaService talks to an Ollama /api/generate endpoint.
func NewOllamaService(host, model string) LLMService {
	return &ollamaService{host: host, model: model}
}

// GenerateText implements LLMService.
func (o *ollamaService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	agent := fiber.Post(o.host)
	agent.JSON(ollamaRequest{Model: o.model, Prompt: prompt, Stream: false})

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("error communicating with Ollama: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return "", fmt.Errorf("error communicating with Ollama: status %d: %s", code, body)
	}

	response := gjson.GetBytes(body, "response")
	if response.Type != gjson.String {
		return "", fmt.Errorf("ollama reply has no response text")
	}

	return response.Str, nil
}
