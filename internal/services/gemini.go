package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	maxRetries int
	retryDelay time.Duration
}

// NewGeminiClient constructs the process-wide genai client shared by the
// text and speech services.
func NewGeminiClient(apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

func NewGeminiService(client *genai.Client, maxRetries int, retryDelay time.Duration) GeminiService {
	return &geminiService{
		client:     client,
		modelName:  "gemini-2.5-flash",
		embedModel: "text-embedding-004",
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate: %v", ErrCapability, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: gemini returned nil response", ErrCapability)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text content in gemini response", ErrCapability)
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService. Retries are bounded with
// doubling backoff; context cancellation aborts between attempts.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32) (string, error) {
	var lastErr error
	delay := g.retryDelay

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		result, err := g.GenerateText(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < g.maxRetries {
			log.Printf("⚠️ Gemini attempt %d failed: %v. Retrying in %s...\n", attempt, err, delay)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: context cancelled: %v", ErrCapability, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", g.maxRetries, lastErr)
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Keep well under the embedding model's token limit
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini embed: %v", ErrCapability, err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrCapability)
	}

	return result.Embeddings[0].Values, nil
}
