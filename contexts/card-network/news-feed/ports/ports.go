package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

type NewsItem struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
}

type Repository interface {
	AppendNews(ctx context.Context, title string, content string, createdAt time.Time) (NewsItem, error)
	// ListNews returns items newest-first; equal timestamps keep insertion
	// order.
	ListNews(ctx context.Context) ([]NewsItem, error)
}
