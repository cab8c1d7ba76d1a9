package collections

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryCollectionRepository is an in-memory implementation for scaffolding
// and tests. Listings preserve insertion order.
type MemoryCollectionRepository struct {
	mu          sync.RWMutex
	collections map[uuid.UUID]*Collection
	order       []uuid.UUID
}

// NewMemoryCollectionRepository creates an empty in-memory collection repository.
func NewMemoryCollectionRepository() *MemoryCollectionRepository {
	return &MemoryCollectionRepository{
		collections: make(map[uuid.UUID]*Collection),
	}
}

func (m *MemoryCollectionRepository) Create(_ context.Context, record *Collection) (*Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.collections[copied.ID] = &copied
	m.order = append(m.order, copied.ID)
	out := copied
	return &out, nil
}

func (m *MemoryCollectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.collections[id]
	if !ok {
		return nil, &NotFoundError{Resource: "collection", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryCollectionRepository) GetBySlug(_ context.Context, slug string) (*Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		rec := m.collections[id]
		if rec != nil && rec.Slug == slug {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, &NotFoundError{Resource: "collection", Key: slug}
}

func (m *MemoryCollectionRepository) Update(_ context.Context, record *Collection) (*Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "collection", Key: record.ID.String()}
	}
	copied := *record
	m.collections[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryCollectionRepository) List(_ context.Context) ([]*Collection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Collection{}
	for _, id := range m.order {
		rec, ok := m.collections[id]
		if !ok {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemoryCollectionRepository) HardDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[id]; !ok {
		return &NotFoundError{Resource: "collection", Key: id.String()}
	}
	delete(m.collections, id)
	for i, ordered := range m.order {
		if ordered == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
