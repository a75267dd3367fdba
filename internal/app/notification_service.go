package app

import (
	"context"
	"log"
	"strings"

	"student-link/internal/domain"
)

type NotificationService struct {
	notifications NotificationRepository
}

func NewNotificationService(notifications NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, p domain.Principal) ([]domain.Notification, error) {
	return s.notifications.ListNotifications(ctx, p.UserID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, p domain.Principal) error {
	return s.notifications.MarkNotificationsRead(ctx, p.UserID)
}

// Broadcast sends one notification to every registered user.
func (s *NotificationService) Broadcast(ctx context.Context, p domain.Principal, title, message string) (int, error) {
	if err := requireAdmin(p); err != nil {
		return 0, err
	}
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return 0, domain.Invalid("title and message are required")
	}
	n, err := s.notifications.BroadcastNotification(ctx, title, message)
	if err != nil {
		return 0, err
	}
	log.Printf("broadcast %q delivered to %d users", title, n)
	return n, nil
}
