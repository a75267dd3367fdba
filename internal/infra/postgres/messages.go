package postgres

import (
	"context"

	"student-link/internal/domain"
)

func (s *Store) CreateMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, message) VALUES ($1, $2, $3)
		RETURNING id, created_at`, msg.SenderID, msg.ReceiverID, msg.Body).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		if pgCode(err) == foreignKeyViolation {
			return domain.Message{}, domain.ErrUserNotFound
		}
		return domain.Message{}, storageErr("create message", err)
	}
	return msg, nil
}

func (s *Store) Conversation(ctx context.Context, a, b int64) ([]domain.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, message, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC, id ASC`, a, b)
	if err != nil {
		return nil, storageErr("conversation", err)
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, storageErr("scan message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("conversation", err)
	}
	return out, nil
}

func (s *Store) MarkConversationRead(ctx context.Context, senderID, receiverID int64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND NOT is_read`, senderID, receiverID)
	if err != nil {
		return storageErr("mark conversation read", err)
	}
	return nil
}

// RecentChats picks the latest message per partner with DISTINCT ON.
func (s *Store) RecentChats(ctx context.Context, userID int64) ([]domain.ChatPreview, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.partner_id, u.fullname, c.message, c.created_at, c.unread
		FROM (
			SELECT DISTINCT ON (partner_id) partner_id, message, created_at, unread
			FROM (
				SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS partner_id,
				       message, created_at, id,
				       (receiver_id = $1 AND NOT is_read) AS unread
				FROM messages
				WHERE sender_id = $1 OR receiver_id = $1
			) m
			ORDER BY partner_id, created_at DESC, id DESC
		) c
		JOIN users u ON u.id = c.partner_id
		ORDER BY c.created_at DESC, c.partner_id ASC`, userID)
	if err != nil {
		return nil, storageErr("recent chats", err)
	}
	defer rows.Close()

	out := []domain.ChatPreview{}
	for rows.Next() {
		var c domain.ChatPreview
		if err := rows.Scan(&c.PartnerID, &c.FullName, &c.LastMessage, &c.At, &c.Unread); err != nil {
			return nil, storageErr("scan chat", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("recent chats", err)
	}
	return out, nil
}

func (s *Store) CountUnreadMessages(ctx context.Context, userID int64) (int, error) {
	return s.count(ctx, "count messages", `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND NOT is_read`, userID)
}
