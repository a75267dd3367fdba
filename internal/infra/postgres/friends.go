package postgres

import (
	"context"

	"student-link/internal/domain"
)

func (s *Store) CreateFriendRequest(ctx context.Context, senderID, receiverID int64) (domain.FriendRequest, error) {
	req := domain.FriendRequest{SenderID: senderID, ReceiverID: receiverID, Status: domain.RequestPending}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO friend_requests (sender_id, receiver_id, status) VALUES ($1, $2, $3)
		RETURNING id, created_at`, senderID, receiverID, req.Status).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		switch pgCode(err) {
		case uniqueViolation:
			return domain.FriendRequest{}, domain.ErrDuplicateRequest
		case foreignKeyViolation:
			return domain.FriendRequest{}, domain.ErrUserNotFound
		}
		return domain.FriendRequest{}, storageErr("create friend request", err)
	}
	return req, nil
}

func (s *Store) GetFriendRequest(ctx context.Context, id int64) (domain.FriendRequest, error) {
	var r domain.FriendRequest
	err := s.pool.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, status, created_at FROM friend_requests WHERE id = $1`, id).
		Scan(&r.ID, &r.SenderID, &r.ReceiverID, &r.Status, &r.CreatedAt)
	if err != nil {
		return domain.FriendRequest{}, notFound("get friend request", err, domain.ErrRequestNotFound)
	}
	return r, nil
}

func (s *Store) AcceptFriendRequest(ctx context.Context, id int64) error {
	return s.execOne(ctx, "accept friend request", domain.ErrRequestNotFound,
		`UPDATE friend_requests SET status = $2 WHERE id = $1`, id, domain.RequestAccepted)
}

func (s *Store) DeleteFriendRequest(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete friend request", domain.ErrRequestNotFound,
		`DELETE FROM friend_requests WHERE id = $1`, id)
}

func (s *Store) PendingRequests(ctx context.Context, userID int64) ([]domain.FriendRequestView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.sender_id, u.fullname, u.university
		FROM friend_requests r
		JOIN users u ON u.id = r.sender_id
		WHERE r.receiver_id = $1 AND r.status = $2
		ORDER BY r.id ASC`, userID, domain.RequestPending)
	if err != nil {
		return nil, storageErr("pending requests", err)
	}
	defer rows.Close()

	out := []domain.FriendRequestView{}
	for rows.Next() {
		var v domain.FriendRequestView
		if err := rows.Scan(&v.RequestID, &v.SenderID, &v.FullName, &v.University); err != nil {
			return nil, storageErr("scan friend request", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("pending requests", err)
	}
	return out, nil
}

func (s *Store) CountPendingRequests(ctx context.Context, userID int64) (int, error) {
	return s.count(ctx, "count friend requests",
		`SELECT COUNT(*) FROM friend_requests WHERE receiver_id = $1 AND status = $2`, userID, domain.RequestPending)
}

func (s *Store) Friends(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.fullname, u.university, u.department, u.is_verified
		FROM friend_requests r
		JOIN users u ON u.id = CASE WHEN r.sender_id = $1 THEN r.receiver_id ELSE r.sender_id END
		WHERE r.status = $2 AND (r.sender_id = $1 OR r.receiver_id = $1)
		ORDER BY r.id ASC`, userID, domain.RequestAccepted)
	if err != nil {
		return nil, storageErr("friends", err)
	}
	return collectSummaries(rows)
}
