package memory

import (
	"context"
	"sync"

	domainerrors "keygate/contexts/card-network/gateway-registry/domain/errors"
	"keygate/contexts/card-network/gateway-registry/ports"
)

// Store is the in-memory gateway catalog. Listing preserves insertion order.
type Store struct {
	mu sync.RWMutex

	gatewaysByID  map[int64]ports.Gateway
	order         []int64
	nextGatewayID int64
}

func NewStore() *Store {
	return &Store{
		gatewaysByID:  make(map[int64]ports.Gateway),
		nextGatewayID: 1,
	}
}

func (s *Store) AddGateway(ctx context.Context, name string, endpoint string) (ports.Gateway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gateway := ports.Gateway{
		ID:       s.nextGatewayID,
		Name:     name,
		Endpoint: endpoint,
		Active:   true,
	}
	s.nextGatewayID++
	s.gatewaysByID[gateway.ID] = gateway
	s.order = append(s.order, gateway.ID)
	return gateway, nil
}

func (s *Store) ToggleGateway(ctx context.Context, gatewayID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gateway, ok := s.gatewaysByID[gatewayID]
	if !ok {
		return false, nil
	}
	gateway.Active = !gateway.Active
	s.gatewaysByID[gatewayID] = gateway
	return true, nil
}

func (s *Store) ListGateways(ctx context.Context) ([]ports.Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Gateway, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.gatewaysByID[id])
	}
	return items, nil
}

func (s *Store) GetGateway(ctx context.Context, gatewayID int64) (ports.Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gateway, ok := s.gatewaysByID[gatewayID]
	if !ok {
		return ports.Gateway{}, domainerrors.ErrGatewayNotFound
	}
	return gateway, nil
}

// SeedGateway installs a fully-formed gateway, claiming its id for the
// sequence. Used by bootstrap demo data and tests.
func (s *Store) SeedGateway(gateway ports.Gateway) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gatewaysByID[gateway.ID] = gateway
	s.order = append(s.order, gateway.ID)
	if gateway.ID >= s.nextGatewayID {
		s.nextGatewayID = gateway.ID + 1
	}
}

var _ ports.Repository = (*Store)(nil)
