package pagewright

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification operations

func (s *service) ListNotifications(ctx context.Context, userID string) ([]*Notification, error) {
	return s.repository.ListNotificationsByUser(ctx, userID)
}

func (s *service) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	return s.repository.MarkNotificationRead(ctx, id)
}

// notify records an in-app notification. Failures are logged; a missing
// notification never fails the operation that produced it.
func (s *service) notify(ctx context.Context, userID, message, link string) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("failed to record notification", "user_id", userID, "error", err)
	}
}
