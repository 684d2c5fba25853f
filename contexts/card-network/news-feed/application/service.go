package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "keygate/contexts/card-network/news-feed/domain/errors"
	"keygate/contexts/card-network/news-feed/ports"
)

// Service is the append-only announcement feed.
type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (s Service) AddNews(ctx context.Context, title string, content string) (ports.NewsItem, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return ports.NewsItem{}, domainerrors.ErrInvalidNewsInput
	}

	item, err := s.Repo.AppendNews(ctx, title, content, s.now())
	if err != nil {
		return ports.NewsItem{}, err
	}
	resolveLogger(s.Logger).Info("news appended",
		"event", "news_appended",
		"module", "card-network/news-feed",
		"layer", "application",
		"news_id", item.ID,
	)
	return item, nil
}

func (s Service) ListNews(ctx context.Context) ([]ports.NewsItem, error) {
	return s.Repo.ListNews(ctx)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
