package httpadapter

import (
	"context"
	"log/slog"

	"keygate/contexts/card-network/news-feed/application"
	httptransport "keygate/contexts/card-network/news-feed/transport/http"
)

// Handler maps HTTP DTOs to news-feed use cases.
type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListNewsHandler(ctx context.Context) (httptransport.ListNewsResponse, error) {
	items, err := h.Service.ListNews(ctx)
	if err != nil {
		return httptransport.ListNewsResponse{}, err
	}
	news := make([]httptransport.NewsItemResponse, 0, len(items))
	for _, item := range items {
		news = append(news, httptransport.NewsItemResponse{
			ID:        item.ID,
			Title:     item.Title,
			Content:   item.Content,
			CreatedAt: item.CreatedAt,
		})
	}
	return httptransport.ListNewsResponse{News: news}, nil
}
