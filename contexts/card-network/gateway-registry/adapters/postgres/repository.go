package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	domainerrors "keygate/contexts/card-network/gateway-registry/domain/errors"
	"keygate/contexts/card-network/gateway-registry/ports"

	"gorm.io/gorm"
)

type gatewayModel struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string `gorm:"column:name;not null"`
	Endpoint string `gorm:"column:endpoint;not null"`
	Active   bool   `gorm:"column:active;not null;default:true"`
}

func (gatewayModel) TableName() string { return "gateways" }

func (m gatewayModel) toEntity() ports.Gateway {
	return ports.Gateway{
		ID:       m.ID,
		Name:     m.Name,
		Endpoint: m.Endpoint,
		Active:   m.Active,
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
	return r.db.AutoMigrate(&gatewayModel{})
}

func (r *Repository) AddGateway(ctx context.Context, name string, endpoint string) (ports.Gateway, error) {
	row := gatewayModel{
		Name:     name,
		Endpoint: endpoint,
		Active:   true,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.Gateway{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ToggleGateway(ctx context.Context, gatewayID int64) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE gateways SET active = NOT active WHERE id = ?",
		gatewayID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListGateways(ctx context.Context) ([]ports.Gateway, error) {
	var rows []gatewayModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.Gateway, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetGateway(ctx context.Context, gatewayID int64) (ports.Gateway, error) {
	var row gatewayModel
	err := r.db.WithContext(ctx).
		Where("id = ?", gatewayID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Gateway{}, domainerrors.ErrGatewayNotFound
		}
		return ports.Gateway{}, err
	}
	return row.toEntity(), nil
}

var _ ports.Repository = (*Repository)(nil)
