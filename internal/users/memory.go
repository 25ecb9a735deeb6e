package users

import (
	"context"
	"sync"

	"github.com/docsession/docsession/internal/models"
)

// MemoryRepository is an in-memory UserRepository used by handler tests
// and local runs without a database file.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]models.User
}

func NewMemoryRepository(usernames ...string) *MemoryRepository {
	m := &MemoryRepository{byID: make(map[int64]models.User)}
	for _, name := range usernames {
		m.Add(name)
	}
	return m
}

// Add stores a new user and returns it with its assigned id.
func (m *MemoryRepository) Add(username string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u := models.User{ID: m.nextID, Username: username}
	m.byID[u.ID] = u
	return u
}

// Remove deletes a user, simulating a reseed underneath a live session.
func (m *MemoryRepository) Remove(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
}

func (m *MemoryRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m *MemoryRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.byID {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}
