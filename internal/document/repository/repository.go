package repository

import (
	"context"

	"github.com/docsession/docsession/internal/models"
)

// Repository is the persistence surface the document service depends on.
// Implementations return models.ErrNotFound for unknown ids.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Document, error)
	Update(ctx context.Context, d *models.Document) error
	Delete(ctx context.Context, id int64) error
}
