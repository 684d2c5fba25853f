package sqliteadapter

import (
	"context"
	"log/slog"

	"keygate/contexts/identity-access/operator-service/ports"

	"gorm.io/gorm"
)

type rosterAdminModel struct {
	OperatorID int64 `gorm:"column:operator_id;primaryKey"`
}

func (rosterAdminModel) TableName() string { return "roster_admins" }

// Store persists the admin roster in an embedded SQLite database. The
// roster is the only core state that must survive a process restart, so a
// single flat table keyed by operator id is enough; Save replaces the whole
// set in one transaction.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := db.AutoMigrate(&rosterAdminModel{}); err != nil {
		return nil, err
	}
	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

func (s *Store) Load(ctx context.Context) ([]int64, error) {
	var rows []rosterAdminModel
	if err := s.db.WithContext(ctx).Order("operator_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.OperatorID)
	}
	return ids, nil
}

func (s *Store) Save(ctx context.Context, operatorIDs []int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&rosterAdminModel{}).Error; err != nil {
			return err
		}
		if len(operatorIDs) == 0 {
			return nil
		}
		rows := make([]rosterAdminModel, 0, len(operatorIDs))
		for _, id := range operatorIDs {
			rows = append(rows, rosterAdminModel{OperatorID: id})
		}
		return tx.Create(&rows).Error
	})
}

var _ ports.RosterStore = (*Store)(nil)
