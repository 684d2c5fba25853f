package memory

import (
	"context"
	"sync"

	domainerrors "keygate/contexts/identity-access/account-service/domain/errors"
	"keygate/contexts/identity-access/account-service/ports"
)

// Store is the in-memory system of record for accounts. A single mutex
// serializes every record mutation, which is what makes check-and-debit one
// atomic step: no concurrent caller can act on a stale balance between the
// check and the decrement.
type Store struct {
	mu sync.RWMutex

	accountsByID    map[int64]ports.Account
	accountIDsByKey map[string]int64
	nextAccountID   int64
}

func NewStore() *Store {
	return &Store{
		accountsByID:    make(map[int64]ports.Account),
		accountIDsByKey: make(map[string]int64),
		nextAccountID:   1,
	}
}

func (s *Store) CreateAccount(ctx context.Context, accessKey string) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if accessKey == "" {
		return ports.Account{}, domainerrors.ErrInvalidAccessKey
	}
	if _, taken := s.accountIDsByKey[accessKey]; taken {
		return ports.Account{}, domainerrors.ErrDuplicateAccessKey
	}

	account := ports.Account{
		ID:        s.nextAccountID,
		AccessKey: accessKey,
		Credits:   0,
		Language:  ports.LanguageEnglish,
	}
	s.nextAccountID++
	s.accountsByID[account.ID] = account
	s.accountIDsByKey[accessKey] = account.ID
	return account, nil
}

func (s *Store) DeleteByAccessKey(ctx context.Context, accessKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accountID, ok := s.accountIDsByKey[accessKey]
	if !ok {
		return false, nil
	}
	delete(s.accountIDsByKey, accessKey)
	delete(s.accountsByID, accountID)
	return true, nil
}

func (s *Store) FindByAccessKey(ctx context.Context, accessKey string) (ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accountID, ok := s.accountIDsByKey[accessKey]
	if !ok {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	return s.accountsByID[accountID], nil
}

func (s *Store) GetAccount(ctx context.Context, accountID int64) (ports.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accountsByID[accountID]
	if !ok {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	return account, nil
}

func (s *Store) UpdatePreferences(ctx context.Context, accountID int64, update ports.PreferencesUpdate) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accountsByID[accountID]
	if !ok {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}

	// Copy, patch, store: the map never holds a half-patched record.
	patched := account
	if update.ProxyHost != nil {
		patched.ProxyHost = *update.ProxyHost
	}
	if update.ProxyPort != nil {
		patched.ProxyPort = *update.ProxyPort
	}
	if update.ProxyUser != nil {
		patched.ProxyUser = *update.ProxyUser
	}
	if update.ProxyPass != nil {
		patched.ProxyPass = *update.ProxyPass
	}
	if update.Language != nil {
		patched.Language = *update.Language
	}
	s.accountsByID[accountID] = patched
	return patched, nil
}

func (s *Store) DebitCredits(ctx context.Context, accountID int64, cost int64) (ports.ConsumeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accountsByID[accountID]
	if !ok {
		return ports.ConsumeResult{}, domainerrors.ErrAccountNotFound
	}
	if account.Credits < cost {
		return ports.ConsumeResult{}, domainerrors.ErrInsufficientCredits
	}

	account.Credits -= cost
	s.accountsByID[accountID] = account
	return ports.ConsumeResult{Granted: true, Remaining: account.Credits}, nil
}

func (s *Store) AddCredits(ctx context.Context, accountID int64, delta int64) (ports.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accountsByID[accountID]
	if !ok {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	if account.Credits+delta < 0 {
		return ports.Account{}, domainerrors.ErrInsufficientCredits
	}

	account.Credits += delta
	s.accountsByID[accountID] = account
	return account, nil
}

// SeedAccount installs a fully-formed account, claiming its id for the
// sequence. Used by bootstrap demo data and tests.
func (s *Store) SeedAccount(account ports.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accountsByID[account.ID] = account
	s.accountIDsByKey[account.AccessKey] = account.ID
	if account.ID >= s.nextAccountID {
		s.nextAccountID = account.ID + 1
	}
}

var _ ports.Repository = (*Store)(nil)
