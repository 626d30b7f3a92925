package serviceImp

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"docchat/entities"
	"docchat/pkg/apperr"
	"docchat/pkg/chunker"
	"docchat/pkg/document/repository"
	"docchat/pkg/parser"
)

type Svc struct {
	r         repository.DocumentRepository
	parser    parser.PageParser
	chunker   *chunker.Chunker
	uploadDir string
}

func New(r repository.DocumentRepository, p parser.PageParser, c *chunker.Chunker, uploadDir string) *Svc {
	return &Svc{r: r, parser: p, chunker: c, uploadDir: uploadDir}
}

// Ingest writes the raw upload to local storage, parses it into pages,
// chunks the text and persists one immutable record. The saved file is
// removed again when any later step fails; a crash between the write and the
// commit still leaves an orphan behind.
func (s *Svc) Ingest(ctx context.Context, filename string, data []byte) (*entities.Document, int, error) {
	path := filepath.Join(s.uploadDir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, 0, apperr.Storage(fmt.Errorf("save upload: %w", err))
	}
	log.Printf("[upload] saved %s (%d bytes)", path, len(data))

	pages, err := s.parser.Parse(ctx, data)
	if err != nil {
		s.discard(path)
		return nil, 0, apperr.Validation(fmt.Errorf("parse pdf: %w", err))
	}

	chunks, err := s.chunker.Split(pages)
	if err != nil {
		s.discard(path)
		return nil, 0, apperr.Validation(fmt.Errorf("chunk %s: %w", filename, err))
	}

	blob, err := entities.EncodeChunks(chunks)
	if err != nil {
		s.discard(path)
		return nil, 0, apperr.Storage(err)
	}

	d := &entities.Document{Filename: filename, Chunks: blob}
	if err := s.r.Create(ctx, d); err != nil {
		s.discard(path)
		return nil, 0, err
	}
	return d, len(chunks), nil
}

func (s *Svc) Get(ctx context.Context, id uint) (*entities.Document, []entities.Chunk, error) {
	d, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	chunks, err := entities.DecodeChunks(d.Chunks)
	if err != nil {
		return nil, nil, apperr.Storage(fmt.Errorf("decode chunks of document %d: %w", id, err))
	}
	return d, chunks, nil
}

func (s *Svc) discard(path string) {
	if err := os.Remove(path); err != nil {
		log.Printf("[upload] remove %s: %v", path, err)
	}
}
