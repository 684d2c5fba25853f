package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"keygate/contexts/card-network/news-feed/ports"

	"gorm.io/gorm"
)

type newsModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title;not null"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (newsModel) TableName() string { return "news" }

func (m newsModel) toEntity() ports.NewsItem {
	return ports.NewsItem{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
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
	return r.db.AutoMigrate(&newsModel{})
}

func (r *Repository) AppendNews(ctx context.Context, title string, content string, createdAt time.Time) (ports.NewsItem, error) {
	row := newsModel{
		Title:     title,
		Content:   content,
		CreatedAt: createdAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return ports.NewsItem{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListNews(ctx context.Context) ([]ports.NewsItem, error) {
	var rows []newsModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.NewsItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

var _ ports.Repository = (*Repository)(nil)
