// Package index builds in-memory similarity indexes over chunk embeddings.
package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"docchat/entities"
	"docchat/pkg/ai"
	"docchat/pkg/apperr"
)

type Builder struct {
	emb ai.Embedder
}

func NewBuilder(emb ai.Embedder) *Builder { return &Builder{emb: emb} }

// Build embeds every chunk and returns a queryable index. Collaborator
// failure is reported as an embedding error and must only affect the caller.
func (b *Builder) Build(ctx context.Context, chunks []entities.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, apperr.Embedding(fmt.Errorf("no chunks to index"))
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := b.emb.Embed(ctx, texts)
	if err != nil {
		return nil, apperr.Embedding(err)
	}
	if len(vectors) != len(chunks) {
		return nil, apperr.Embedding(fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)))
	}
	return &Index{emb: b.emb, chunks: chunks, vectors: vectors}, nil
}

// Index holds chunk vectors for exact nearest-neighbor search by cosine
// similarity. Immutable after Build.
type Index struct {
	emb     ai.Embedder
	chunks  []entities.Chunk
	vectors [][]float32
}

// Query returns the k chunks most similar to the question, best first. Ties
// go to the chunk that appears earlier in the document.
func (ix *Index) Query(ctx context.Context, question string, k int) ([]entities.Chunk, error) {
	if k <= 0 {
		k = 4
	}
	qv, err := ix.emb.Embed(ctx, []string{question})
	if err != nil {
		return nil, apperr.Embedding(err)
	}
	if len(qv) == 0 || len(qv[0]) == 0 {
		return nil, apperr.Embedding(fmt.Errorf("empty question embedding"))
	}

	order := make([]int, len(ix.chunks))
	scores := make([]float64, len(ix.chunks))
	for i := range ix.chunks {
		order[i] = i
		scores[i] = cosine(qv[0], ix.vectors[i])
	}
	// Stable keeps original chunk order for equal scores.
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	if k > len(order) {
		k = len(order)
	}
	out := make([]entities.Chunk, k)
	for i := 0; i < k; i++ {
		out[i] = ix.chunks[order[i]]
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
