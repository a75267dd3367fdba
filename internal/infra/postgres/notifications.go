package postgres

import (
	"context"

	"student-link/internal/domain"
)

func (s *Store) CreateNotification(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, sender_id, post_id, type, title, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		n.UserID, nullableID(n.SenderID), nullableID(n.PostID), n.Kind, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, storageErr("create notification", err)
	}
	return n, nil
}

// BroadcastNotification writes one row per user in a single statement.
func (s *Store) BroadcastNotification(ctx context.Context, title, message string) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (user_id, type, title, message)
		SELECT id, $1, $2, $3 FROM users`, domain.NotifyBroadcast, title, message)
	if err != nil {
		return 0, storageErr("broadcast", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) ListNotifications(ctx context.Context, userID int64) ([]domain.Notification, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, COALESCE(sender_id, 0), COALESCE(post_id, 0), type, title, message, is_read, created_at
		FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, storageErr("list notifications", err)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.SenderID, &n.PostID, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, storageErr("scan notification", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list notifications", err)
	}
	return out, nil
}

func (s *Store) MarkNotificationsRead(ctx context.Context, userID int64) error {
	if _, err := s.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID); err != nil {
		return storageErr("mark notifications read", err)
	}
	return nil
}

func (s *Store) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	return s.count(ctx, "count notifications", `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID)
}
