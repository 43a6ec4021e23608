package dto

import (
	"time"

	"github.com/openlearn/edulearn-api/internal/models"
)

// NewsListQuery describes query string filters for the news feed.
type NewsListQuery struct {
	Search   string `query:"search" validate:"omitempty,max=255"`
	Page     int    `query:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// NewsPostResponse serializes one published post.
type NewsPostResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
}

// NewsListResponse is a paginated feed page.
type NewsListResponse struct {
	Posts []NewsPostResponse `json:"posts"`
	Total int64              `json:"total"`
}

// NewNewsListResponse converts published posts into a feed page.
func NewNewsListResponse(posts []models.NewsPost, total int64) NewsListResponse {
	responses := make([]NewsPostResponse, 0, len(posts))
	for _, post := range posts {
		response := NewsPostResponse{
			ID:    post.ID,
			Title: post.Title,
			Body:  post.Body,
		}
		if post.PublishedAt != nil {
			response.PublishedAt = *post.PublishedAt
		}
		responses = append(responses, response)
	}

	return NewsListResponse{Posts: responses, Total: total}
}
