package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainerrors "keygate/contexts/identity-access/account-service/domain/errors"
	"keygate/contexts/identity-access/account-service/ports"
)

// Service is the account-service use-case layer: access-key lifecycle,
// credit metering, and per-account preference state.
type Service struct {
	Repo       ports.Repository
	Keys       ports.KeyGenerator
	Logger     *slog.Logger
	KeyRetries int
}

// IssueKey creates a new account with a fresh opaque access key and zero
// credits. Generation is generate-then-insert: a key that collides with an
// existing one is discarded and re-rolled instead of trusted blindly.
func (s Service) IssueKey(ctx context.Context) (ports.Account, error) {
	logger := resolveLogger(s.Logger)
	retries := s.KeyRetries
	if retries <= 0 {
		retries = 5
	}

	for attempt := 0; attempt < retries; attempt++ {
		key, err := s.Keys.NewKey(ctx)
		if err != nil {
			return ports.Account{}, err
		}
		account, err := s.Repo.CreateAccount(ctx, key)
		if err != nil {
			if errors.Is(err, domainerrors.ErrDuplicateAccessKey) {
				logger.Warn("access key collision, re-rolling",
					"event", "account_key_collision",
					"module", "identity-access/account-service",
					"layer", "application",
					"attempt", attempt+1,
				)
				continue
			}
			return ports.Account{}, err
		}
		logger.Info("access key issued",
			"event", "account_key_issued",
			"module", "identity-access/account-service",
			"layer", "application",
			"account_id", account.ID,
		)
		return account, nil
	}
	return ports.Account{}, domainerrors.ErrKeyGeneration
}

// RevokeKey removes the account holding the given key. An unknown key is a
// normal negative result, not an error.
func (s Service) RevokeKey(ctx context.Context, accessKey string) (bool, error) {
	accessKey = strings.TrimSpace(accessKey)
	if accessKey == "" {
		return false, nil
	}
	revoked, err := s.Repo.DeleteByAccessKey(ctx, accessKey)
	if err != nil {
		return false, err
	}
	if revoked {
		resolveLogger(s.Logger).Info("access key revoked",
			"event", "account_key_revoked",
			"module", "identity-access/account-service",
			"layer", "application",
		)
	}
	return revoked, nil
}

// ValidateKey resolves an access key to its account. Lookup is exact-match
// and case-sensitive; failed-attempt hygiene belongs to the login boundary.
func (s Service) ValidateKey(ctx context.Context, accessKey string) (ports.Account, error) {
	if accessKey == "" {
		return ports.Account{}, domainerrors.ErrAccountNotFound
	}
	return s.Repo.FindByAccessKey(ctx, accessKey)
}

func (s Service) GetAccount(ctx context.Context, accountID int64) (ports.Account, error) {
	return s.Repo.GetAccount(ctx, accountID)
}

// UpdatePreferences applies a partial proxy/language update as a full-record
// replace. Unset fields keep their prior values.
func (s Service) UpdatePreferences(ctx context.Context, accountID int64, update ports.PreferencesUpdate) (ports.Account, error) {
	if update.Language != nil && !ports.IsValidLanguage(*update.Language) {
		return ports.Account{}, domainerrors.ErrInvalidLanguage
	}
	return s.Repo.UpdatePreferences(ctx, accountID, update)
}

// TryConsume atomically checks and debits the balance. The caller invokes
// the gated external operation only after a granted result; whether a failed
// external call is refunded is the caller's policy, not the ledger's.
func (s Service) TryConsume(ctx context.Context, accountID int64, cost int64) (ports.ConsumeResult, error) {
	if cost <= 0 {
		return ports.ConsumeResult{}, domainerrors.ErrInvalidCost
	}
	result, err := s.Repo.DebitCredits(ctx, accountID, cost)
	if err != nil {
		return ports.ConsumeResult{}, err
	}
	resolveLogger(s.Logger).Debug("credits consumed",
		"event", "account_credits_consumed",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", accountID,
		"cost", cost,
		"remaining", result.Remaining,
	)
	return result, nil
}

// Credit applies an administrative balance adjustment. Negative deltas are
// allowed but may never take the balance below zero.
func (s Service) Credit(ctx context.Context, accountID int64, delta int64) (ports.Account, error) {
	account, err := s.Repo.AddCredits(ctx, accountID, delta)
	if err != nil {
		return ports.Account{}, err
	}
	resolveLogger(s.Logger).Info("credits adjusted",
		"event", "account_credits_adjusted",
		"module", "identity-access/account-service",
		"layer", "application",
		"account_id", accountID,
		"delta", delta,
		"balance", account.Credits,
	)
	return account, nil
}
