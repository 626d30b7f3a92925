package repository

import (
	"context"

	"docchat/entities"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *entities.Document) error
	ByID(ctx context.Context, id uint) (*entities.Document, error)
}
