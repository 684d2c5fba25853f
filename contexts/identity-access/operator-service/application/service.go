package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	domainerrors "keygate/contexts/identity-access/operator-service/domain/errors"
	"keygate/contexts/identity-access/operator-service/ports"
)

// Service classifies command-channel callers into privilege tiers and owns
// the mutable admin roster. The owner set is fixed at construction and is
// always a subset of the admin set; roster mutations persist through the
// RosterStore before they are acknowledged.
type Service struct {
	mu sync.RWMutex

	owners map[int64]bool
	admins map[int64]bool
	store  ports.RosterStore
	logger *slog.Logger
}

// NewService loads the persisted roster and merges it with the configured
// owner set. The merge is idempotent: owners are always (re-)added, and the
// merged set is written back so disk and memory agree from the start.
func NewService(ctx context.Context, ownerIDs []int64, store ports.RosterStore, logger *slog.Logger) (*Service, error) {
	persisted, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrRosterPersistence, err)
	}

	owners := make(map[int64]bool, len(ownerIDs))
	admins := make(map[int64]bool, len(ownerIDs)+len(persisted))
	for _, id := range ownerIDs {
		owners[id] = true
		admins[id] = true
	}
	for _, id := range persisted {
		admins[id] = true
	}

	s := &Service{
		owners: owners,
		admins: admins,
		store:  store,
		logger: resolveLogger(logger),
	}
	if err := store.Save(ctx, s.adminIDsLocked()); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrRosterPersistence, err)
	}

	s.logger.Info("operator roster loaded",
		"event", "operator_roster_loaded",
		"module", "identity-access/operator-service",
		"layer", "application",
		"owner_count", len(owners),
		"admin_count", len(admins),
	)
	return s, nil
}

// Classify is a pure function of the roster.
func (s *Service) Classify(operatorID int64) ports.Tier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.owners[operatorID]:
		return ports.TierOwner
	case s.admins[operatorID]:
		return ports.TierAdmin
	default:
		return ports.TierUnauthorized
	}
}

// RequireAdmin gates every mutating operation on the identity store and the
// gateway registry.
func (s *Service) RequireAdmin(operatorID int64) error {
	if !s.Classify(operatorID).AtLeast(ports.TierAdmin) {
		return domainerrors.ErrNotAdmin
	}
	return nil
}

// AddAdmin grants the admin tier to a new operator. Owner-only. The raw
// identifier comes straight from the command channel and is validated here.
func (s *Service) AddAdmin(ctx context.Context, requesterID int64, rawOperatorID string) (int64, error) {
	if !s.Classify(requesterID).AtLeast(ports.TierOwner) {
		return 0, domainerrors.ErrNotOwner
	}
	newAdminID, err := ParseOperatorID(rawOperatorID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.admins[newAdminID] {
		return 0, domainerrors.ErrAlreadyAdmin
	}

	s.admins[newAdminID] = true
	if err := s.store.Save(ctx, s.adminIDsLocked()); err != nil {
		// Revert: an unpersisted grant must not be acknowledged.
		delete(s.admins, newAdminID)
		s.logger.Error("roster save failed, grant reverted",
			"event", "operator_roster_save_failed",
			"module", "identity-access/operator-service",
			"layer", "application",
			"operator_id", newAdminID,
			"error", err.Error(),
		)
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrRosterPersistence, err)
	}

	s.logger.Info("admin granted",
		"event", "operator_admin_granted",
		"module", "identity-access/operator-service",
		"layer", "application",
		"operator_id", newAdminID,
	)
	return newAdminID, nil
}

// RemoveAdmin revokes the admin tier. Owner-only; configured owners can
// never be removed.
func (s *Service) RemoveAdmin(ctx context.Context, requesterID int64, rawOperatorID string) (int64, error) {
	if !s.Classify(requesterID).AtLeast(ports.TierOwner) {
		return 0, domainerrors.ErrNotOwner
	}
	operatorID, err := ParseOperatorID(rawOperatorID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owners[operatorID] {
		return 0, domainerrors.ErrOwnerImmutable
	}
	if !s.admins[operatorID] {
		return 0, domainerrors.ErrNotAdmin
	}

	delete(s.admins, operatorID)
	if err := s.store.Save(ctx, s.adminIDsLocked()); err != nil {
		s.admins[operatorID] = true
		return 0, fmt.Errorf("%w: %v", domainerrors.ErrRosterPersistence, err)
	}

	s.logger.Info("admin revoked",
		"event", "operator_admin_revoked",
		"module", "identity-access/operator-service",
		"layer", "application",
		"operator_id", operatorID,
	)
	return operatorID, nil
}

// ListAdmins returns the roster in ascending order. Owner-only.
func (s *Service) ListAdmins(requesterID int64) ([]int64, error) {
	if !s.Classify(requesterID).AtLeast(ports.TierOwner) {
		return nil, domainerrors.ErrNotOwner
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminIDsLocked(), nil
}

func (s *Service) adminIDsLocked() []int64 {
	ids := make([]int64, 0, len(s.admins))
	for id := range s.admins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i int, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ParseOperatorID validates a channel-supplied identifier. Operator ids are
// positive decimal integers.
func ParseOperatorID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrInvalidOperatorID
	}
	return id, nil
}
