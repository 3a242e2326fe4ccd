// Package batch buffers the items each user submits until the batch is completed.
package batch

import (
	"sync"

	"github.com/orgball2608/affiliate-post-bot/internal/domain"
)

type pending struct {
	mu    sync.Mutex
	items []domain.Item
}

// Store keeps one pending batch per user. Operations on the same user are
// serialized; different users never contend on the same lock.
type Store struct {
	batches sync.Map // map[int64]*pending
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) get(userID int64) *pending {
	v, _ := s.batches.LoadOrStore(userID, &pending{})
	return v.(*pending)
}

// Append adds item to the user's batch, creating the batch on first use.
func (s *Store) Append(userID int64, item domain.Item) {
	b := s.get(userID)
	b.mu.Lock()
	b.items = append(b.items, item)
	b.mu.Unlock()
}

// TakeAndClear returns the user's items in arrival order and leaves an empty batch.
func (s *Store) TakeAndClear(userID int64) []domain.Item {
	b := s.get(userID)
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.mu.Unlock()

	if items == nil {
		return []domain.Item{}
	}
	return items
}

// Len reports how many items the user has pending.
func (s *Store) Len(userID int64) int {
	v, ok := s.batches.Load(userID)
	if !ok {
		return 0
	}
	b := v.(*pending)
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
