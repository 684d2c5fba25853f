package httptransport

import "time"

type NewsItemResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ListNewsResponse struct {
	News []NewsItemResponse `json:"news"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
