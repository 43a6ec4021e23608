package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/repository"
)

// ErrLearnerNotFound indicates no learner profile exists for the account.
var ErrLearnerNotFound = errors.New("learner profile not found")

// LearnerService resolves learner profiles from authenticated accounts.
type LearnerService interface {
	Profile(ctx context.Context, accountID uint) (dto.LearnerResponse, error)
}

type learnerService struct {
	learners repository.LearnerRepository
	logger   zerolog.Logger
}

// NewLearnerService builds a learner service.
func NewLearnerService(learners repository.LearnerRepository, logger zerolog.Logger) LearnerService {
	return &learnerService{
		learners: learners,
		logger:   logger.With().Str("component", "learner_service").Logger(),
	}
}

func (s *learnerService) Profile(ctx context.Context, accountID uint) (dto.LearnerResponse, error) {
	learner, err := s.learners.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LearnerResponse{}, ErrLearnerNotFound
		}

		return dto.LearnerResponse{}, err
	}

	return dto.NewLearnerResponse(learner), nil
}
