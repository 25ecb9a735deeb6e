package service

import (
	"context"
	"testing"

	"github.com/docsession/docsession/internal/document"
	"github.com/docsession/docsession/internal/document/repository"
	"github.com/docsession/docsession/internal/models"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateChangesOnlySuppliedFields(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	id := repo.Create(models.Document{Title: "Title", Content: "Body"})
	svc := New(repo)

	d, err := svc.Update(ctx, id, document.Patch{Content: strPtr("New body")})
	require.NoError(t, err)
	require.Equal(t, "Title", d.Title)
	require.Equal(t, "New body", d.Content)

	stored, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, d, stored)

	d, err = svc.Update(ctx, id, document.Patch{})
	require.NoError(t, err)
	require.Equal(t, stored, d, "empty patch is a no-op")
}

func TestMissingDocumentIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemoryRepo())

	_, err := svc.Get(ctx, 1)
	require.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.Update(ctx, 1, document.Patch{Title: strPtr("x")})
	require.ErrorIs(t, err, models.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, 1), models.ErrNotFound)
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	id := repo.Create(models.Document{Title: "gone"})
	svc := New(repo)

	require.NoError(t, svc.Delete(ctx, id))
	_, err := svc.Get(ctx, id)
	require.ErrorIs(t, err, models.ErrNotFound)
}
