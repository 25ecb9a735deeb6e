package users

import (
	"context"
	"errors"
	"strings"

	"github.com/docsession/docsession/internal/models"
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r}
}

// Login resolves a claimed username to a user. Identity is claimed, not
// proven: there is no credential check. Unknown or empty usernames yield
// models.ErrUnauthenticated.
func (s *Service) Login(ctx context.Context, username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, models.ErrUnauthenticated
	}
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}
