package ports

import "context"

const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
	LanguageHindi   = "hi"
)

func IsValidLanguage(language string) bool {
	switch language {
	case LanguageEnglish, LanguageSpanish, LanguageHindi:
		return true
	default:
		return false
	}
}

// KeyGenerator produces opaque access keys. Keys must be unguessable but
// carry no structure the core depends on; uniqueness is enforced by the
// repository insert, not by the generator.
type KeyGenerator interface {
	NewKey(ctx context.Context) (string, error)
}

// Account is the full tenant record. Mutations replace the whole record so
// readers never observe a partially-updated value.
type Account struct {
	ID        int64
	AccessKey string
	Credits   int64
	ProxyHost string
	ProxyPort string
	ProxyUser string
	ProxyPass string
	Language  string
}

// PreferencesUpdate is a partial update; nil fields keep their prior value.
type PreferencesUpdate struct {
	ProxyHost *string
	ProxyPort *string
	ProxyUser *string
	ProxyPass *string
	Language  *string
}

type ConsumeResult struct {
	Granted   bool
	Remaining int64
}

type Repository interface {
	// CreateAccount inserts a fresh account for the given access key and
	// returns ErrDuplicateAccessKey when the key is already taken.
	CreateAccount(ctx context.Context, accessKey string) (Account, error)
	DeleteByAccessKey(ctx context.Context, accessKey string) (bool, error)
	FindByAccessKey(ctx context.Context, accessKey string) (Account, error)
	GetAccount(ctx context.Context, accountID int64) (Account, error)
	UpdatePreferences(ctx context.Context, accountID int64, update PreferencesUpdate) (Account, error)
	// DebitCredits performs the check-and-debit as one atomic step. It never
	// leaves the balance negative; an insufficient balance is reported via
	// ErrInsufficientCredits with the balance unchanged.
	DebitCredits(ctx context.Context, accountID int64, cost int64) (ConsumeResult, error)
	// AddCredits applies a signed delta and rejects any delta that would
	// take the balance below zero.
	AddCredits(ctx context.Context, accountID int64, delta int64) (Account, error)
}
