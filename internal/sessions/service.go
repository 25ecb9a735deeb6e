package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DefaultTTL applies when NewService is given a non-positive ttl.
const DefaultTTL = 7 * 24 * time.Hour

// Service wraps repository operations with session lifecycle rules
type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
}

func NewService(r Repository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{repo: r, ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

// TTL is the lifetime given to new sessions.
func (s *Service) TTL() time.Duration { return s.ttl }

// Start stores a new anonymous session and returns it.
func (s *Service) Start(ctx context.Context) (*Session, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := &Session{ID: id, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the live session for id, or nil when it is unknown or expired.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := s.repo.Get(ctx, id)
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.expired(s.now()) {
		// cleanup expired session
		_ = s.repo.Delete(ctx, id)
		return nil, nil
	}
	return sess, nil
}

// Bind attaches userID to the session named by id. When that session is
// gone a fresh one is started, so callers must use the returned session's ID.
func (s *Service) Bind(ctx context.Context, id string, userID int64) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		if sess, err = s.Start(ctx); err != nil {
			return nil, err
		}
	}
	uid := userID
	sess.UserID = &uid
	// a login renews the session so it lives as long as the cookie issued with it
	sess.ExpiresAt = s.now().Add(s.ttl)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Clear removes the user from the session named by id. Unknown sessions are
// not an error.
func (s *Service) Clear(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil || sess == nil || sess.UserID == nil {
		return err
	}
	sess.UserID = nil
	return s.repo.Save(ctx, sess)
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
