package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/docsession/docsession/internal/database"
	"github.com/docsession/docsession/internal/models"
)

var _ Repository = (*SQLiteRepo)(nil)

// SQLiteRepo implements Repository on the documents table.
type SQLiteRepo struct {
	db database.DBTX
}

func NewSQLiteRepo(db database.DBTX) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

func (r *SQLiteRepo) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	query, args, err := sq.Select("id", "title", "content").From("documents").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build document query: %w", err)
	}
	var d models.Document
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Title, &d.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find document %d: %w", id, err)
	}
	return &d, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, d *models.Document) error {
	query, args, err := sq.Update("documents").
		Set("title", d.Title).
		Set("content", d.Content).
		Where(sq.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build document update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update document %d: %w", d.ID, err)
	}
	return expectOneRow(res, d.ID)
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("documents").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build document delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

// Insert stores d and fills in its generated id.
func (r *SQLiteRepo) Insert(ctx context.Context, d *models.Document) error {
	query, args, err := sq.Insert("documents").Columns("title", "content").Values(d.Title, d.Content).ToSql()
	if err != nil {
		return fmt.Errorf("build document insert: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert document %q: %w", d.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert document %q: %w", d.Title, err)
	}
	d.ID = id
	return nil
}

// DeleteAll removes every document and returns how many rows went away.
func (r *SQLiteRepo) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := sq.Delete("documents").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build document delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	return res.RowsAffected()
}

// List returns every document ordered by id.
func (r *SQLiteRepo) List(ctx context.Context) ([]*models.Document, error) {
	query, args, err := sq.Select("id", "title", "content").From("documents").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build document list: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Content); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for document %d: %w", id, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
