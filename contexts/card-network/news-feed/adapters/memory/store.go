package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"keygate/contexts/card-network/news-feed/ports"
)

// Store is the in-memory news feed. Items are kept in insertion order and
// sorted newest-first on read; the stable sort preserves insertion order
// for equal timestamps.
type Store struct {
	mu sync.RWMutex

	items      []ports.NewsItem
	nextNewsID int64
}

func NewStore() *Store {
	return &Store{nextNewsID: 1}
}

func (s *Store) AppendNews(ctx context.Context, title string, content string, createdAt time.Time) (ports.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := ports.NewsItem{
		ID:        s.nextNewsID,
		Title:     title,
		Content:   content,
		CreatedAt: createdAt.UTC(),
	}
	s.nextNewsID++
	s.items = append(s.items, item)
	return item, nil
}

func (s *Store) ListNews(ctx context.Context) ([]ports.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]ports.NewsItem(nil), s.items...)
	sort.SliceStable(items, func(i int, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// SeedNews installs a fully-formed item, claiming its id for the sequence.
func (s *Store) SeedNews(item ports.NewsItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	if item.ID >= s.nextNewsID {
		s.nextNewsID = item.ID + 1
	}
}

var _ ports.Repository = (*Store)(nil)
