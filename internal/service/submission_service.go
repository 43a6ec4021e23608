package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/grading"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/repository"
)

// Submission workflow errors, one per rejected precondition.
var (
	ErrNotEnrolled            = errors.New("learner is not enrolled in the course")
	ErrAssignmentNotAvailable = errors.New("assignment is not available for submission")
	ErrAlreadySubmitted       = errors.New("assignment already submitted")
	ErrAudioUploadFailed      = errors.New("audio upload failed")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrNotSubmissionOwner     = errors.New("submission belongs to another learner")
)

// Notifier delivers an in-app notification; implementations must not block
// the submission flow on delivery problems.
type Notifier interface {
	Notify(ctx context.Context, accountID uint, title, body string)
}

// SubmissionService orchestrates the submit-and-grade workflow.
type SubmissionService interface {
	Submit(ctx context.Context, accountID uint, payload dto.SubmissionCreateRequest, audio *multipart.FileHeader) (dto.SubmissionResponse, error)
	Get(ctx context.Context, submissionID, accountID uint) (dto.SubmissionResponse, error)
	Results(ctx context.Context, assignmentID, accountID uint) (dto.ResultsResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	enrollments repository.EnrollmentRepository
	learners    repository.LearnerRepository
	validator   *validator.Validate
	uploader    FileUploader
	notifier    Notifier
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(
	submissions repository.SubmissionRepository,
	assignments repository.AssignmentRepository,
	enrollments repository.EnrollmentRepository,
	learners repository.LearnerRepository,
	validate *validator.Validate,
	uploader FileUploader,
	notifier Notifier,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		enrollments: enrollments,
		learners:    learners,
		validator:   validate,
		uploader:    uploader,
		notifier:    notifier,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "submission_service").Logger(),
		tracer:      otel.Tracer("github.com/openlearn/edulearn-api/internal/service/submission"),
		now:         time.Now,
	}
}

// Submit records a learner's single attempt at an assignment. Preconditions
// are checked in a fixed order and each failure maps to its own error. A
// passed deadline does not reject the attempt; it only marks it late.
func (s *submissionService) Submit(ctx context.Context, accountID uint, payload dto.SubmissionCreateRequest, audio *multipart.FileHeader) (dto.SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "submission.submit")
	span.SetAttributes(
		attribute.Int64("submission.assignment_id", int64(payload.AssignmentID)),
		attribute.Int64("submission.account_id", int64(accountID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmissionResponse{}, err
	}

	learner, err := s.learners.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrLearnerNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetForLearner(ctx, payload.AssignmentID, learner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	enrolled, err := s.enrollments.IsEnrolled(ctx, assignment.CourseID, learner.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if !enrolled {
		return dto.SubmissionResponse{}, ErrNotEnrolled
	}

	if assignment.Status != models.AssignmentStatusActive {
		return dto.SubmissionResponse{}, ErrAssignmentNotAvailable
	}

	if _, err := s.submissions.GetByAssignmentAndLearner(ctx, assignment.ID, learner.ID); err == nil {
		return dto.SubmissionResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SubmissionResponse{}, err
	}

	now := s.now()
	status := models.SubmissionStatusSubmitted
	if assignment.IsPastDeadline(now) {
		status = models.SubmissionStatusLate
	}

	submission := models.Submission{
		AssignmentID: assignment.ID,
		LearnerID:    learner.ID,
		Status:       status,
		Content:      s.sanitizer.Sanitize(payload.Content),
		SubmittedAt:  now,
	}

	if assignment.Type == models.AssignmentTypeAudio && audio != nil {
		url, err := s.uploadAudio(ctx, audio)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "audio_upload_failed")
			return dto.SubmissionResponse{}, err
		}
		submission.AudioURL = url
		submission.AudioDurationSec = payload.DurationSec
		submission.Assets = []models.SubmissionAsset{{
			Kind:        "audio",
			URL:         url,
			DurationSec: payload.DurationSec,
		}}
	}

	var answers []models.Answer
	if len(payload.Answers) > 0 {
		questions, err := s.assignments.Questions(ctx, assignment.ID)
		if err != nil {
			return dto.SubmissionResponse{}, err
		}

		questionsByID := make(map[uint]models.Question, len(questions))
		for _, aq := range questions {
			questionsByID[aq.ID] = aq.Question
		}

		inputs := make([]grading.AnswerInput, 0, len(payload.Answers))
		for id, value := range payload.Answers {
			inputs = append(inputs, grading.AnswerInput{AssignmentQuestionID: id, Value: value})
			answers = append(answers, models.Answer{
				LearnerID:            learner.ID,
				AssignmentQuestionID: id,
				Value:                value,
			})
		}

		submission.Score = grading.Score(questionsByID, inputs)
	}

	if err := s.submissions.CreateWithAnswers(ctx, &submission, answers); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent attempt won the race; the unique index decides
			return dto.SubmissionResponse{}, ErrAlreadySubmitted
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_persist_failed")
		return dto.SubmissionResponse{}, err
	}

	created, err := s.submissions.GetByID(ctx, submission.ID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().
		Uint("submission_id", created.ID).
		Uint("assignment_id", assignment.ID).
		Uint("learner_id", learner.ID).
		Str("status", created.Status).
		Float64("score", created.Score).
		Msg("submission recorded")

	span.SetAttributes(
		attribute.String("submission.status", created.Status),
		attribute.Float64("submission.score", created.Score),
	)

	if s.notifier != nil {
		body := fmt.Sprintf("Your attempt at %q was recorded with status %s.", assignment.Title, created.Status)
		s.notifier.Notify(ctx, accountID, "Submission received", body)
	}

	return dto.NewSubmissionResponse(created), nil
}

func (s *submissionService) Get(ctx context.Context, submissionID, accountID uint) (dto.SubmissionResponse, error) {
	learner, err := s.learners.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrLearnerNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	if submission.LearnerID != learner.ID {
		return dto.SubmissionResponse{}, ErrNotSubmissionOwner
	}

	return dto.NewSubmissionResponse(submission), nil
}

// Results returns the learner's outcome for an assignment. Correct answers
// are included only when the assignment's visibility policy allows it at the
// time of the call.
func (s *submissionService) Results(ctx context.Context, assignmentID, accountID uint) (dto.ResultsResponse, error) {
	learner, err := s.learners.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultsResponse{}, ErrLearnerNotFound
		}
		return dto.ResultsResponse{}, err
	}

	assignment, err := s.assignments.GetForLearner(ctx, assignmentID, learner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultsResponse{}, ErrAssignmentNotFound
		}
		return dto.ResultsResponse{}, err
	}

	submission, err := s.submissions.GetByAssignmentAndLearner(ctx, assignment.ID, learner.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultsResponse{}, ErrSubmissionNotFound
		}
		return dto.ResultsResponse{}, err
	}

	questions, err := s.assignments.Questions(ctx, assignment.ID)
	if err != nil {
		return dto.ResultsResponse{}, err
	}

	ids := make([]uint, 0, len(questions))
	for _, aq := range questions {
		ids = append(ids, aq.ID)
	}

	answers, err := s.submissions.ListAnswers(ctx, learner.ID, ids)
	if err != nil {
		return dto.ResultsResponse{}, err
	}

	answerByQuestion := make(map[uint]string, len(answers))
	for _, answer := range answers {
		answerByQuestion[answer.AssignmentQuestionID] = answer.Value
	}

	showAnswers := grading.CanShowAnswers(assignment, s.now())

	response := dto.ResultsResponse{
		AssignmentID: assignment.ID,
		Score:        submission.Score,
		Status:       submission.Status,
		SubmittedAt:  submission.SubmittedAt,
		ShowAnswers:  showAnswers,
		Questions:    make([]dto.ResultQuestion, 0, len(questions)),
	}

	for _, aq := range questions {
		raw := answerByQuestion[aq.ID]
		result := dto.ResultQuestion{
			AssignmentQuestionID: aq.ID,
			Position:             aq.Position,
			Content:              aq.Question.Content,
			Kind:                 aq.Question.Kind,
			Points:               aq.Question.PointValue(),
			YourAnswer:           raw,
			Verdict:              verdictLabel(grading.Evaluate(aq.Question, raw)),
		}

		if showAnswers {
			canonical := canonicalAnswer(aq.Question)
			result.CorrectAnswer = &canonical
		}

		response.Questions = append(response.Questions, result)
	}

	return response, nil
}

func (s *submissionService) uploadAudio(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := validateAudioType(file); err != nil {
		return "", err
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer reader.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, reader)
	if err != nil {
		s.logger.Error().Err(err).Str("file", file.Filename).Msg("audio upload failed")
		return "", fmt.Errorf("%w: %s", ErrAudioUploadFailed, err)
	}

	return url, nil
}

func validateAudioType(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer reader.Close()

	mime, err := mimetype.DetectReader(reader)
	if err != nil {
		return fmt.Errorf("failed to detect file type: %w", err)
	}

	allowed := []string{"audio/mpeg", "audio/wav", "audio/x-wav", "audio/ogg", "audio/aac", "audio/flac", "audio/webm", "audio/mp4", "video/webm"}
	for _, a := range allowed {
		if mime.Is(a) {
			return nil
		}
	}

	return fmt.Errorf("unsupported audio type: %s", mime.String())
}

func verdictLabel(verdict grading.Verdict) string {
	switch verdict {
	case grading.VerdictCorrect:
		return "correct"
	case grading.VerdictPending:
		return "pending"
	default:
		return "incorrect"
	}
}

// canonicalAnswer renders the instructor-authored answer for display once
// the visibility policy allows it.
func canonicalAnswer(question models.Question) string {
	switch question.Kind {
	case models.QuestionMultipleChoice:
		for _, option := range question.Options {
			if option.IsCorrect {
				return strconv.FormatUint(uint64(option.ID), 10)
			}
		}
		return ""
	case models.QuestionMatching:
		return string(question.Pairs)
	default:
		return question.Answer
	}
}
