package index

import (
	"context"
	"sync"

	"docchat/entities"
)

// Cache memoizes built indexes per document id. Documents are immutable and
// never deleted, so an entry stays valid for the life of the process. Build
// failures are not cached; the next question retries.
type Cache struct {
	builder *Builder

	mu      sync.RWMutex
	indexes map[uint]*Index
}

func NewCache(b *Builder) *Cache {
	return &Cache{builder: b, indexes: make(map[uint]*Index)}
}

// For returns the cached index for docID, building one from chunks if
// needed. Building happens outside the lock so a slow embedding call never
// blocks other sessions; a concurrent duplicate build is harmless and the
// first stored entry wins.
func (c *Cache) For(ctx context.Context, docID uint, chunks []entities.Chunk) (*Index, error) {
	c.mu.RLock()
	ix, ok := c.indexes[docID]
	c.mu.RUnlock()
	if ok {
		return ix, nil
	}

	ix, err := c.builder.Build(ctx, chunks)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.indexes[docID]; ok {
		return prev, nil
	}
	c.indexes[docID] = ix
	return ix, nil
}
