package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// =============================================================================
// DEEPSEEK GENERATOR - OpenAI-compatible chat completions fallback
// =============================================================================

const deepseekURL = "https://api.deepseek.com/chat/completions"

// DeepSeekGenerator produces commentary through DeepSeek's chat completions
// API. The API has no usable streaming here, so the whole response arrives
// as a single chunk.
type DeepSeekGenerator struct {
	Model  string // defaults to "deepseek-chat"
	URL    string // defaults to the public endpoint
	Client *http.Client
}

type deepseekMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepseekRequest struct {
	Model       string            `json:"model"`
	Messages    []deepseekMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	Stream      bool              `json:"stream"`
}

type deepseekResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *DeepSeekGenerator) Stream(ctx context.Context, systemPrompt, userPrompt string) (<-chan Chunk, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY environment variable not set")
	}

	model := g.Model
	if model == "" {
		model = "deepseek-chat"
	}

	body, err := json.Marshal(deepseekRequest{
		Model: model,
		Messages: []deepseekMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   4096,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := g.URL
	if url == "" {
		url = deepseekURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	out := make(chan Chunk, 1)
	go func() {
		defer close(out)
		res, err := client.Do(req)
		if err != nil {
			out <- Chunk{Err: fmt.Errorf("calling DeepSeek: %w", err)}
			return
		}
		defer res.Body.Close()

		raw, err := io.ReadAll(res.Body)
		if err != nil {
			out <- Chunk{Err: fmt.Errorf("reading response: %w", err)}
			return
		}
		if res.StatusCode != http.StatusOK {
			out <- Chunk{Err: fmt.Errorf("DeepSeek returned status %d: %s", res.StatusCode, raw)}
			return
		}

		var parsed deepseekResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			out <- Chunk{Err: fmt.Errorf("decoding response: %w", err)}
			return
		}
		if len(parsed.Choices) == 0 {
			out <- Chunk{Err: fmt.Errorf("DeepSeek returned no choices")}
			return
		}

		select {
		case out <- Chunk{Text: parsed.Choices[0].Message.Content}:
		case <-ctx.Done():
		}
	}()
	return out, nil
}
