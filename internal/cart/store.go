package cart

import (
	"context"
	"sync"

	"github.com/gabriel447/ProductExplorer/internal/domain"
)

// Store is the durable key-value persistence contract for the cart. Load
// returns nil items (and no error) when nothing has been persisted yet.
type Store interface {
	Load(ctx context.Context) (domain.CartItems, error)
	Save(ctx context.Context, items domain.CartItems) error
}

// MemoryStore is an in-process Store used by tests and no-persistence runs.
type MemoryStore struct {
	mu    sync.Mutex
	items domain.CartItems
	set   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the last saved items.
func (s *MemoryStore) Load(ctx context.Context) (domain.CartItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, nil
	}
	out := make(domain.CartItems, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Save keeps a copy of the given items.
func (s *MemoryStore) Save(ctx context.Context, items domain.CartItems) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(domain.CartItems, len(items))
	copy(s.items, items)
	s.set = true
	return nil
}
