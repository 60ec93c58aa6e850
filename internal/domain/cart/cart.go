// Package cart implements the shopping cart store: a single source of truth
// for one customer's cart, persisted to durable key-value storage after every
// mutation and reloaded on startup.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ngducnhatt/muacode.com/internal/kv"
	"github.com/ngducnhatt/muacode.com/pkg/vnd"
)

// StorageKey is the fixed key prefix carts persist under. A per-session
// suffix separates customers sharing one store.
const StorageKey = "muacode.store_cart"

// Item is one cart line. Price is the pre-formatted display string the
// storefront showed when the item was added; totals parse it back to đồng.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
	Badge       string `json:"badge,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
	Note        string `json:"note,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Store holds one cart. All mutations are serialized through a single mutex,
// so observers never see a partially applied change. Every mutation rewrites
// the persisted snapshot; persistence failures are logged and swallowed so
// the in-memory cart always stays usable.
type Store struct {
	storage kv.KV
	key     string

	mu    sync.Mutex
	items []Item
}

// New creates a Store bound to the given storage key and loads the persisted
// cart. A missing key, read failure, or corrupt payload yields an empty cart,
// never an error.
func New(ctx context.Context, storage kv.KV, key string) *Store {
	s := &Store{storage: storage, key: key}

	raw, ok, err := storage.Get(ctx, key)
	if err != nil {
		zctx.From(ctx).Warn("Cart load failed, starting empty",
			zap.String("key", key), zap.Error(err))
		return s
	}
	if !ok {
		return s
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		zctx.From(ctx).Warn("Cart payload corrupt, starting empty",
			zap.String("key", key), zap.Error(err))
		return s
	}
	s.items = items
	return s
}

// Add puts an item into the cart. Quantity is clamped to at least 1. Adding
// an id that is already present increments that line's quantity instead of
// duplicating it.
func (s *Store) Add(ctx context.Context, item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
	s.persist(ctx)
}

// Remove deletes the line with the given id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity, clamped to at least 1. Absent ids
// are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Items returns a snapshot copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalValue derives the cart total in đồng: Σ parse(price) × quantity.
// It is recomputed from the line list, never stored.
func (s *Store) TotalValue() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.items {
		total += vnd.Parse(it.Price) * int64(it.Quantity)
	}
	return total
}

// persist writes the full line list under the store key. Callers hold s.mu.
// Failures are logged for operators and otherwise swallowed.
func (s *Store) persist(ctx context.Context) {
	payload, err := json.Marshal(s.items)
	if err != nil {
		zctx.From(ctx).Warn("Cart marshal failed", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(payload)); err != nil {
		zctx.From(ctx).Warn("Cart persist failed",
			zap.String("key", s.key), zap.Error(err))
	}
}
