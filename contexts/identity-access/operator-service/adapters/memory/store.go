package memory

import (
	"context"
	"sync"

	"keygate/contexts/identity-access/operator-service/ports"
)

// Store is an in-memory RosterStore for tests and no-persistence setups.
// Contents survive service re-construction, which is what the restart
// scenarios exercise.
type Store struct {
	mu  sync.Mutex
	ids []int64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.ids...), nil
}

func (s *Store) Save(_ context.Context, operatorIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append([]int64(nil), operatorIDs...)
	return nil
}

var _ ports.RosterStore = (*Store)(nil)
