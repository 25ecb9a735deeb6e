package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/docsession/docsession/internal/database"
	"github.com/docsession/docsession/internal/models"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

var _ UserRepository = (*SQLiteRepository)(nil)

// SQLiteRepository implements UserRepository on the users table.
type SQLiteRepository struct {
	db database.DBTX
}

// NewSQLiteRepository creates a repository over a pool or a transaction.
func NewSQLiteRepository(db database.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *SQLiteRepository) findOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := sq.Select("id", "username").From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}
	var u models.User
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Insert stores u and fills in its generated id.
func (r *SQLiteRepository) Insert(ctx context.Context, u *models.User) error {
	query, args, err := sq.Insert("users").Columns("username").Values(u.Username).ToSql()
	if err != nil {
		return fmt.Errorf("build user insert: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	u.ID = id
	return nil
}

// DeleteAll removes every user and returns how many rows went away.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) (int64, error) {
	query, args, err := sq.Delete("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build user delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored users.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build user count: %w", err)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
