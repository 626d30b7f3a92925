package service

import (
	"context"

	"docchat/entities"
)

type DocumentService interface {
	// Ingest persists the upload and returns the stored record plus the
	// number of chunks produced.
	Ingest(ctx context.Context, filename string, data []byte) (*entities.Document, int, error)
	// Get resolves a document id to its record and decoded chunk sequence.
	Get(ctx context.Context, id uint) (*entities.Document, []entities.Chunk, error)
}
