package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/repository"
)

// NewsService lists published news posts.
type NewsService interface {
	List(ctx context.Context, query dto.NewsListQuery) (dto.NewsListResponse, error)
}

type newsService struct {
	repo      repository.NewsRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewNewsService builds a news service.
func NewNewsService(repo repository.NewsRepository, validate *validator.Validate, logger zerolog.Logger) NewsService {
	return &newsService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "news_service").Logger(),
	}
}

func (s *newsService) List(ctx context.Context, query dto.NewsListQuery) (dto.NewsListResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.NewsListResponse{}, err
	}

	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = 20
	}

	posts, total, err := s.repo.ListPublished(ctx, repository.NewsFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.NewsListResponse{}, err
	}

	return dto.NewNewsListResponse(posts, total), nil
}
