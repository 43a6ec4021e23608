package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/observability"
	"github.com/openlearn/edulearn-api/internal/service"
	"github.com/openlearn/edulearn-api/internal/utils"
)

// SubmissionHandler manages submission endpoints.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// RegisterAssignmentRoutes attaches the submit and results routes to the
// assignments group.
func (h *SubmissionHandler) RegisterAssignmentRoutes(router fiber.Router, submitLimiter fiber.Handler) {
	if submitLimiter == nil {
		submitLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	router.Post("/:id/submit", submitLimiter, h.submit)
	router.Get("/:id/results", h.results)
}

// Register attaches the submission lookup route.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("/:id", h.get)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.SubmissionCreateRequest{
		AssignmentID: assignmentID,
		Content:      c.FormValue("content"),
	}

	if raw := strings.TrimSpace(c.FormValue("duration_sec")); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration < 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid duration_sec")
		}
		payload.DurationSec = duration
	}

	if raw := strings.TrimSpace(c.FormValue("answers")); raw != "" {
		answers, err := parseAnswers(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid answers payload")
		}
		payload.Answers = answers
	}

	// optional; only meaningful for audio assignments
	audio, err := c.FormFile("audio_file")
	if err != nil {
		audio = nil
	}

	submission, err := h.service.Submit(c.Context(), accountIDFromContext(c), payload, audio)
	if err != nil {
		return h.handleError(c, err)
	}

	observability.Submissions().WithLabelValues(submission.Status).Inc()

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission created", submission)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.service.Get(c.Context(), id, accountIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *SubmissionHandler) results(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	results, err := h.service.Results(c.Context(), assignmentID, accountIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "results retrieved", results)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrLearnerNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "learner profile not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.Is(err, service.ErrNotEnrolled):
		return utils.SendError(c, fiber.StatusForbidden, "not enrolled in this course")
	case errors.Is(err, service.ErrNotSubmissionOwner):
		return utils.SendError(c, fiber.StatusForbidden, "not the submission owner")
	case errors.Is(err, service.ErrAssignmentNotAvailable):
		return utils.SendError(c, fiber.StatusForbidden, "assignment not available")
	case errors.Is(err, service.ErrAlreadySubmitted):
		return utils.SendError(c, fiber.StatusConflict, "assignment already submitted")
	case errors.Is(err, service.ErrAudioUploadFailed):
		return utils.SendError(c, fiber.StatusBadGateway, "audio upload failed")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// parseAnswers decodes the answers form field, a JSON object mapping
// assignment-question ids to raw answer strings.
func parseAnswers(raw string) (map[uint]string, error) {
	var decoded map[string]string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	answers := make(map[uint]string, len(decoded))
	for key, value := range decoded {
		id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
		if err != nil || id == 0 {
			return nil, errors.New("invalid assignment question id: " + key)
		}
		answers[uint(id)] = value
	}

	return answers, nil
}
