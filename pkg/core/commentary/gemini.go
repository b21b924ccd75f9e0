package commentary

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiGenerator streams commentary from Google's Gemini models.
type GeminiGenerator struct {
	Model string // e.g. "gemini-2.0-flash-exp"
}

var _ Generator = (*GeminiGenerator)(nil)

// Stream opens a streaming generateContent call. Tokens arrive on the
// returned channel; the channel closes when the model finishes or the
// context is cancelled.
func (g *GeminiGenerator) Stream(ctx context.Context, systemPrompt, userPrompt string) (<-chan Chunk, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := g.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	out := make(chan Chunk)
	go func() {
		defer close(out)
		for resp, err := range client.Models.GenerateContentStream(ctx, model, genai.Text(userPrompt), config) {
			if err != nil {
				out <- Chunk{Err: fmt.Errorf("gemini stream: %w", err)}
				return
			}
			if text := resp.Text(); text != "" {
				select {
				case out <- Chunk{Text: text}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
