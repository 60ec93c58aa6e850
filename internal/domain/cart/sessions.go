package cart

import (
	"context"
	"sync"

	"github.com/ngducnhatt/muacode.com/internal/kv"
)

// Sessions hands out one cart Store per browser session. Stores are created
// lazily on first use and reloaded from storage at that point, so a customer
// returning after a restart finds their cart intact.
type Sessions struct {
	storage kv.KV

	mu     sync.Mutex
	stores map[string]*Store
}

// NewSessions creates a session cart registry over the given storage.
func NewSessions(storage kv.KV) *Sessions {
	return &Sessions{
		storage: storage,
		stores:  make(map[string]*Store),
	}
}

// Store returns the cart for a session, creating and loading it on first use.
func (m *Sessions) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := New(ctx, m.storage, StorageKey+":"+sessionID)
	m.stores[sessionID] = s
	return s
}
