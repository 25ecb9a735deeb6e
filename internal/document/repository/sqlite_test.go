package repository

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/docsession/docsession/internal/database"
	"github.com/docsession/docsession/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepo_UpdateMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE documents SET title = ?, content = ? WHERE id = ?")).
		WithArgs("t", "c", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewSQLiteRepo(db).Update(context.Background(), &models.Document{ID: 42, Title: "t", Content: "c"})
	require.ErrorIs(t, err, models.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepo_DeleteDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM documents WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnError(errors.New("database is locked"))

	err = NewSQLiteRepo(db).Delete(context.Background(), 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, models.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepo_FindByIDScansProjection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, content FROM documents WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content"}).AddRow(5, "Notes", "body"))

	d, err := NewSQLiteRepo(db).FindByID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, &models.Document{ID: 5, Title: "Notes", Content: "body"}, d)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	r := NewSQLiteRepo(db)
	d := &models.Document{Title: "Draft", Content: "first"}
	require.NoError(t, r.Insert(ctx, d))
	require.NotZero(t, d.ID)

	d.Content = "second"
	require.NoError(t, r.Update(ctx, d))
	got, err := r.FindByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "second", got.Content)

	// unchanged values still count as a matched row
	require.NoError(t, r.Update(ctx, got))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, r.Delete(ctx, d.ID))
	_, err = r.FindByID(ctx, d.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, d.ID), models.ErrNotFound)
}
