package services

import (
	"context"
	"time"

	"event-media-backend/internal/apperr"
	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// NotificationService records social-graph notifications
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify stores n. Failures are logged and never returned: a notification
// must not undo the mutation that caused it.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Warn().
			Err(err).
			Str("recipient", n.Recipient).
			Str("sender", n.Sender).
			Str("type", n.Type).
			Msg("Failed to create notification")
	}
}

// List returns the newest notifications for recipient
func (s *NotificationService) List(ctx context.Context, recipient string, limit int) ([]*models.Notification, error) {
	if recipient == "" {
		return nil, apperr.InvalidInput("recipient is required")
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	notifications, err := s.repo.ListByRecipient(ctx, recipient, limit)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch notifications", err)
	}
	return notifications, nil
}
