package services

import (
	"context"
	"fmt"
	"log"
)

// LLMService turns a prompt into model text.
type LLMService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerateTextWithRetry calls llm up to maxRetries times, stopping early
// when ctx is done.
func GenerateTextWithRetry(ctx context.Context, llm LLMService, prompt string, maxRetries int) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := llm.GenerateText(ctx, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️  Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
