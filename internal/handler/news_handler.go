package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/service"
	"github.com/openlearn/edulearn-api/internal/utils"
)

// NewsHandler serves the public news feed.
type NewsHandler struct {
	service service.NewsService
	logger  zerolog.Logger
}

// NewNewsHandler builds a news handler instance.
func NewNewsHandler(service service.NewsService, logger zerolog.Logger) *NewsHandler {
	return &NewsHandler{
		service: service,
		logger:  logger.With().Str("component", "news_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *NewsHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *NewsHandler) list(c *fiber.Ctx) error {
	var query dto.NewsListQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	news, err := h.service.List(c.Context(), query)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "news retrieved", news)
}
