package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/repository"
)

// DashboardService aggregates a learner's standing across their active
// assignments, cached per learner for a short TTL.
type DashboardService interface {
	GetDashboard(ctx context.Context, accountID uint) (dto.DashboardResponse, error)
}

type dashboardService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	learners    repository.LearnerRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, learners repository.LearnerRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		assignments: assignments,
		submissions: submissions,
		learners:    learners,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, accountID uint) (dto.DashboardResponse, error) {
	learner, err := s.learners.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DashboardResponse{}, ErrLearnerNotFound
		}
		return dto.DashboardResponse{}, err
	}

	cacheKey := fmt.Sprintf("dashboard:learner:%d", learner.ID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("learner_id", learner.ID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	assignments, err := s.assignments.ListActiveForLearner(ctx, learner.ID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	submissions, err := s.submissions.ListByLearner(ctx, learner.ID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := s.buildResponse(assignments, submissions)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) buildResponse(assignments []models.Assignment, submissions []models.Submission) dto.DashboardResponse {
	now := s.now()

	submissionByAssignment := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		submissionByAssignment[submission.AssignmentID] = submission
	}

	summary := dto.DashboardSummary{}
	rows := make([]dto.DashboardAssignment, 0, len(assignments))
	var scoreTotal float64
	var scored int

	for _, assignment := range assignments {
		summary.TotalAssignments++
		row := dto.DashboardAssignment{
			AssignmentID: assignment.ID,
			Title:        assignment.Title,
			Type:         string(assignment.Type),
			Deadline:     assignment.Deadline,
			Overdue:      assignment.IsPastDeadline(now),
		}

		if submission, ok := submissionByAssignment[assignment.ID]; ok {
			row.Submitted = true
			row.Status = submission.Status
			score := submission.Score
			row.Score = &score
			row.Overdue = false

			summary.Submitted++
			if submission.IsLate() {
				summary.Late++
			}
			scoreTotal += submission.Score
			scored++
		} else {
			summary.Pending++
		}

		rows = append(rows, row)
	}

	if scored > 0 {
		average := scoreTotal / float64(scored)
		summary.AverageScore = &average
	}

	return dto.DashboardResponse{
		Summary:     summary,
		Assignments: rows,
		GeneratedAt: now,
	}
}
