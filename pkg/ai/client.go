// pkg/ai/client.go

package ai

import "context"

// Embedder maps texts to fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text from a prompt. Decoding is deterministic
// (temperature 0) so answers are reproducible for a given prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
