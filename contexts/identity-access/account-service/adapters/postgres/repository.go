package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	domainerrors "keygate/contexts/identity-access/account-service/domain/errors"
	"keygate/contexts/identity-access/account-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type accountModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	AccessKey string `gorm:"column:access_key;uniqueIndex;not null"`
	Credits   int64  `gorm:"column:credits;not null;default:0"`
	ProxyHost string `gorm:"column:proxy_host"`
	ProxyPort string `gorm:"column:proxy_port"`
	ProxyUser string `gorm:"column:proxy_user"`
	ProxyPass string `gorm:"column:proxy_pass"`
	Language  string `gorm:"column:language;not null;default:en"`
}

func (accountModel) TableName() string { return "accounts" }

func (m accountModel) toEntity() ports.Account {
	return ports.Account{
		ID:        m.ID,
		AccessKey: m.AccessKey,
		Credits:   m.Credits,
		ProxyHost: m.ProxyHost,
		ProxyPort: m.ProxyPort,
		ProxyUser: m.ProxyUser,
		ProxyPass: m.ProxyPass,
		Language:  m.Language,
	}
}

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&accountModel{})
}

func (r *Repository) CreateAccount(ctx context.Context, accessKey string) (ports.Account, error) {
	if strings.TrimSpace(accessKey) == "" {
		return ports.Account{}, domainerrors.ErrInvalidAccessKey
	}
	row := accountModel{
		AccessKey: accessKey,
		Credits:   0,
		Language:  ports.LanguageEnglish,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.Account{}, domainerrors.ErrDuplicateAccessKey
		}
		return ports.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) DeleteByAccessKey(ctx context.Context, accessKey string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("access_key = ?", accessKey).
		Delete(&accountModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) FindByAccessKey(ctx context.Context, accessKey string) (ports.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("access_key = ?", accessKey).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, domainerrors.ErrAccountNotFound
		}
		return ports.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID int64) (ports.Account, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, domainerrors.ErrAccountNotFound
		}
		return ports.Account{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdatePreferences(ctx context.Context, accountID int64, update ports.PreferencesUpdate) (ports.Account, error) {
	values := map[string]any{}
	if update.ProxyHost != nil {
		values["proxy_host"] = *update.ProxyHost
	}
	if update.ProxyPort != nil {
		values["proxy_port"] = *update.ProxyPort
	}
	if update.ProxyUser != nil {
		values["proxy_user"] = *update.ProxyUser
	}
	if update.ProxyPass != nil {
		values["proxy_pass"] = *update.ProxyPass
	}
	if update.Language != nil {
		values["language"] = *update.Language
	}

	if len(values) > 0 {
		result := r.db.WithContext(ctx).
			Model(&accountModel{}).
			Where("id = ?", accountID).
			Updates(values)
		if result.Error != nil {
			return ports.Account{}, result.Error
		}
		if result.RowsAffected == 0 {
			return ports.Account{}, domainerrors.ErrAccountNotFound
		}
	}
	return r.GetAccount(ctx, accountID)
}

// DebitCredits relies on a single guarded UPDATE for atomicity: the balance
// check and the decrement are one statement, so concurrent debits against
// the same row serialize on the row lock and never drive the balance
// negative.
func (r *Repository) DebitCredits(ctx context.Context, accountID int64, cost int64) (ports.ConsumeResult, error) {
	var remaining int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			"UPDATE accounts SET credits = credits - ? WHERE id = ? AND credits >= ?",
			cost, accountID, cost,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&accountModel{}).Where("id = ?", accountID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return domainerrors.ErrAccountNotFound
			}
			return domainerrors.ErrInsufficientCredits
		}
		return tx.Model(&accountModel{}).
			Where("id = ?", accountID).
			Pluck("credits", &remaining).
			Error
	})
	if err != nil {
		return ports.ConsumeResult{}, err
	}
	return ports.ConsumeResult{Granted: true, Remaining: remaining}, nil
}

func (r *Repository) AddCredits(ctx context.Context, accountID int64, delta int64) (ports.Account, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			"UPDATE accounts SET credits = credits + ? WHERE id = ? AND credits + ? >= 0",
			delta, accountID, delta,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&accountModel{}).Where("id = ?", accountID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return domainerrors.ErrAccountNotFound
			}
			return domainerrors.ErrInsufficientCredits
		}
		return nil
	})
	if err != nil {
		return ports.Account{}, err
	}
	return r.GetAccount(ctx, accountID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

var _ ports.Repository = (*Repository)(nil)
