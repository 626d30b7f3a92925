// pkg/ai/mock_client.go

package ai

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// MockEmbedder produces deterministic vectors from token hashes. Texts that
// share words land near each other, which is enough for local development
// and tests.
type MockEmbedder struct {
	Dim int
}

func NewMockEmbedder() *MockEmbedder { return &MockEmbedder{Dim: 64} }

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, m.Dim)
		for _, w := range strings.Fields(strings.ToLower(t)) {
			h := fnv.New32a()
			h.Write([]byte(w))
			v[h.Sum32()%uint32(m.Dim)] += 1
		}
		out[i] = v
	}
	return out, nil
}

// MockGenerator answers by echoing the beginning of the prompt's context.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator { return &MockGenerator{} }

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	const marker = "Context: "
	if i := strings.Index(prompt, marker); i >= 0 {
		rest := prompt[i+len(marker):]
		if j := strings.Index(rest, "\n"); j > 0 {
			rest = rest[:j]
		}
		if len(rest) > 200 {
			rest = rest[:200]
		}
		return fmt.Sprintf("(mock) Based on the document: %s", strings.TrimSpace(rest)), nil
	}
	return "(mock) I could not find relevant context.", nil
}
