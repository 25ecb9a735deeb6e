package users

import (
	"context"
	"errors"
	"testing"

	"github.com/docsession/docsession/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[string]*models.User
	err   error
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

func TestLogin(t *testing.T) {
	repo := &fakeRepo{users: map[string]*models.User{"Ada": {ID: 3, Username: "Ada"}}}
	svc := NewService(repo)
	ctx := context.Background()

	u, err := svc.Login(ctx, "Ada")
	require.NoError(t, err)
	require.Equal(t, int64(3), u.ID)

	_, err = svc.Login(ctx, "ada")
	require.ErrorIs(t, err, models.ErrUnauthenticated, "match is exact")

	_, err = svc.Login(ctx, "   ")
	require.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestLogin_RepositoryFailureIsNotAnAuthFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewService(&fakeRepo{err: boom})

	_, err := svc.Login(context.Background(), "Ada")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, models.ErrUnauthenticated)
}

func TestGetByID(t *testing.T) {
	svc := NewService(NewMemoryRepository("Ada", "Grace"))
	ctx := context.Background()

	u, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "Grace", u.Username)

	_, err = svc.GetByID(ctx, 99)
	require.ErrorIs(t, err, models.ErrNotFound)
}
