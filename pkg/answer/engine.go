// Package answer turns a question plus a chunk sequence into grounded text.
package answer

import (
	"context"
	"fmt"
	"strings"

	"docchat/entities"
	"docchat/pkg/ai"
	"docchat/pkg/apperr"
	"docchat/pkg/index"
)

const promptTemplate = `Answer the question based only on the context provided.

Context: %s

Question: %s`

type Engine struct {
	cache *index.Cache
	gen   ai.Generator
	topK  int
}

func NewEngine(cache *index.Cache, gen ai.Generator, topK int) *Engine {
	if topK <= 0 {
		topK = 4
	}
	return &Engine{cache: cache, gen: gen, topK: topK}
}

// Answer retrieves the chunks most relevant to the question and asks the
// generation collaborator to answer from them. It never retries; the caller
// decides what a failure means for the session.
func (e *Engine) Answer(ctx context.Context, docID uint, chunks []entities.Chunk, question string) (string, error) {
	ix, err := e.cache.For(ctx, docID, chunks)
	if err != nil {
		return "", err
	}
	top, err := ix.Query(ctx, question, e.topK)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(top))
	for i, c := range top {
		parts[i] = c.Text
	}
	prompt := fmt.Sprintf(promptTemplate, strings.Join(parts, "\n\n"), question)

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return "", apperr.Generation(err)
	}
	return strings.TrimSpace(text), nil
}
