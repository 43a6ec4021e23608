package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/openlearn/edulearn-api/internal/service"
	"github.com/openlearn/edulearn-api/internal/utils"
)

// LearnerHandler serves the authenticated learner's own profile.
type LearnerHandler struct {
	service service.LearnerService
	logger  zerolog.Logger
}

// NewLearnerHandler builds a learner handler instance.
func NewLearnerHandler(service service.LearnerService, logger zerolog.Logger) *LearnerHandler {
	return &LearnerHandler{
		service: service,
		logger:  logger.With().Str("component", "learner_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *LearnerHandler) Register(router fiber.Router) {
	router.Get("", h.profile)
}

func (h *LearnerHandler) profile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.Context(), accountIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrLearnerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "learner profile not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}
