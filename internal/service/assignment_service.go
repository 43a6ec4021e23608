package service

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/repository"
)

// ErrAssignmentNotFound indicates the requested assignment does not exist or
// is not visible to the caller.
var ErrAssignmentNotFound = errors.New("assignment not found")

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// AssignmentService exposes the learner-facing assignment use cases.
type AssignmentService interface {
	Get(ctx context.Context, assignmentID, accountID uint) (dto.AssignmentResponse, error)
	Questions(ctx context.Context, assignmentID, accountID uint) ([]dto.QuestionResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	learners    repository.LearnerRepository
	logger      zerolog.Logger
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, learners repository.LearnerRepository, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		learners:    learners,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Get(ctx context.Context, assignmentID, accountID uint) (dto.AssignmentResponse, error) {
	learner, assignment, err := s.resolve(ctx, assignmentID, accountID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	var prior *models.Submission
	submission, err := s.submissions.GetByAssignmentAndLearner(ctx, assignment.ID, learner.ID)
	switch {
	case err == nil:
		prior = &submission
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first visit, nothing submitted yet
	default:
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment, prior), nil
}

func (s *assignmentService) Questions(ctx context.Context, assignmentID, accountID uint) ([]dto.QuestionResponse, error) {
	_, assignment, err := s.resolve(ctx, assignmentID, accountID)
	if err != nil {
		return nil, err
	}

	questions, err := s.assignments.Questions(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewQuestionResponseSlice(questions), nil
}

func (s *assignmentService) resolve(ctx context.Context, assignmentID, accountID uint) (models.Learner, models.Assignment, error) {
	learner, err := s.learners.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Learner{}, models.Assignment{}, ErrLearnerNotFound
		}

		return models.Learner{}, models.Assignment{}, err
	}

	assignment, err := s.assignments.GetForLearner(ctx, assignmentID, learner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Learner{}, models.Assignment{}, ErrAssignmentNotFound
		}

		return models.Learner{}, models.Assignment{}, err
	}

	return learner, assignment, nil
}
