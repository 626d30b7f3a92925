package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"docchat/entities"
	"docchat/pkg/apperr"
	"docchat/pkg/document/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DocumentRepository { return &repo{db} }

func (r *repo) Create(ctx context.Context, d *entities.Document) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id uint) (*entities.Document, error) {
	var d entities.Document
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &d, nil
}
