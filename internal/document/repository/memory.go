package repository

import (
	"context"
	"sync"

	"github.com/docsession/docsession/internal/models"
)

var _ Repository = (*MemoryRepo)(nil)

// MemoryRepo is a simple in-memory repository used for unit and handler tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	store  map[int64]models.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[int64]models.Document)}
}

// Create stores a copy of doc under a fresh id and returns that id.
func (m *MemoryRepo) Create(doc models.Document) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	doc.ID = m.nextID
	m.store[doc.ID] = doc
	return doc.ID
}

func (m *MemoryRepo) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &d, nil
}

func (m *MemoryRepo) Update(ctx context.Context, d *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[d.ID]; !ok {
		return models.ErrNotFound
	}
	m.store[d.ID] = *d
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.store, id)
	return nil
}
