// Package commentary builds advisor-style narrative over an analysis result
// by streaming from a language model, with a deterministic fallback when no
// model is configured.
package commentary

import "context"

// Chunk is one streamed fragment of generated text. A non-nil Err terminates
// the stream; the channel is closed after the final chunk either way.
type Chunk struct {
	Text string
	Err  error
}

// Generator streams model output for a system prompt and user prompt pair.
type Generator interface {
	Stream(ctx context.Context, systemPrompt, userPrompt string) (<-chan Chunk, error)
}
