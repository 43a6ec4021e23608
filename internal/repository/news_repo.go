package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/models"
)

// NewsFilter describes pagination & search options for the news feed.
type NewsFilter struct {
	Search   string
	Page     int
	PageSize int
}

// NewsRepository lists published news posts.
type NewsRepository interface {
	ListPublished(ctx context.Context, filter NewsFilter) ([]models.NewsPost, int64, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository instantiates the repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) ListPublished(ctx context.Context, filter NewsFilter) ([]models.NewsPost, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NewsPost{}).
		Where("published_at IS NOT NULL")

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("published_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var posts []models.NewsPost
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
