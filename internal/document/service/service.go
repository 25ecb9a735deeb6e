package service

import (
	"context"
	"fmt"

	"github.com/docsession/docsession/internal/document"
	"github.com/docsession/docsession/internal/document/repository"
	"github.com/docsession/docsession/internal/models"
)

// Service defines the document business operations used by the handler layer.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Document, error)
	Update(ctx context.Context, id int64, patch document.Patch) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
}

// New returns a Service backed by repo.
func New(repo repository.Repository) Service {
	return &documentService{repo: repo}
}

type documentService struct {
	repo repository.Repository
}

func (s *documentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	return s.repo.FindByID(ctx, id)
}

// Update fetches the document, overwrites the patched fields and persists it.
// Concurrent updates to the same row are last-write-wins.
func (s *documentService) Update(ctx context.Context, id int64, patch document.Patch) (*models.Document, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return d, nil
	}
	patch.Apply(d)
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("persist document %d: %w", id, err)
	}
	return d, nil
}

func (s *documentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
