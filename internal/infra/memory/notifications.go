package memory

import (
	"context"
	"time"

	"student-link/internal/domain"
)

func (s *Store) CreateNotification(_ context.Context, n domain.Notification) (domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.nextIDLocked("notifications")
	s.notifications[n.ID] = n
	return n, nil
}

func (s *Store) BroadcastNotification(_ context.Context, title, message string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, u := range sortedValues(s.users) {
		id := s.nextIDLocked("notifications")
		s.notifications[id] = domain.Notification{
			ID:        id,
			UserID:    u.ID,
			Kind:      domain.NotifyBroadcast,
			Title:     title,
			Message:   message,
			CreatedAt: now,
		}
	}
	return len(s.users), nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(_ context.Context, userID int64) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := sortedValues(s.notifications)
	out := []domain.Notification{}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].UserID == userID {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *Store) MarkNotificationsRead(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			s.notifications[id] = n
		}
	}
	return nil
}

func (s *Store) CountUnreadNotifications(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, notif := range s.notifications {
		if notif.UserID == userID && !notif.Read {
			n++
		}
	}
	return n, nil
}
