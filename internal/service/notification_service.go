package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/dto"
	"github.com/openlearn/edulearn-api/internal/models"
	"github.com/openlearn/edulearn-api/internal/repository"
)

// ErrNotificationNotFound indicates the notification does not exist or
// belongs to another account.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService persists in-app notifications and fans them out to
// interested consumers over NATS.
type NotificationService interface {
	Notifier
	List(ctx context.Context, accountID uint, limit, offset int) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, accountID uint) (dto.NotificationResponse, error)
}

type notificationService struct {
	repo      repository.NotificationRepository
	nats      *nats.Conn
	subject   string
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

type notificationEvent struct {
	AccountID uint      `json:"account_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// NewNotificationService constructs a notification service. The NATS
// connection may be nil; delivery then stays database-only.
func NewNotificationService(repo repository.NotificationRepository, natsConn *nats.Conn, subject string, logger zerolog.Logger) NotificationService {
	if subject == "" {
		subject = "edulearn.notifications"
	}

	return &notificationService{
		repo:      repo,
		nats:      natsConn,
		subject:   subject,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "notification_service").Logger(),
	}
}

// Notify stores a notification and publishes it best effort. Failures are
// logged and swallowed so callers never fail a business flow over them.
func (s *notificationService) Notify(ctx context.Context, accountID uint, title, body string) {
	notification := models.Notification{
		AccountID: accountID,
		Title:     s.sanitizer.Sanitize(title),
		Body:      s.sanitizer.Sanitize(body),
	}

	if err := s.repo.Create(ctx, &notification); err != nil {
		s.logger.Warn().Err(err).Uint("account_id", accountID).Msg("failed to persist notification")
		return
	}

	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(notificationEvent{
		AccountID: accountID,
		Title:     notification.Title,
		Body:      notification.Body,
		SentAt:    time.Now(),
	})
	if err != nil {
		return
	}

	if err := s.nats.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish notification event")
	}
}

func (s *notificationService) List(ctx context.Context, accountID uint, limit, offset int) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return dto.NewNotificationResponseSlice(notifications), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, accountID uint) (dto.NotificationResponse, error) {
	notification, err := s.repo.MarkRead(ctx, id, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}

		return dto.NotificationResponse{}, err
	}

	return dto.NewNotificationResponse(notification), nil
}
