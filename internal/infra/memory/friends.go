package memory

import (
	"context"
	"time"

	"student-link/internal/domain"
)

func (s *Store) CreateFriendRequest(_ context.Context, senderID, receiverID int64) (domain.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if (r.SenderID == senderID && r.ReceiverID == receiverID) ||
			(r.SenderID == receiverID && r.ReceiverID == senderID) {
			return domain.FriendRequest{}, domain.ErrDuplicateRequest
		}
	}
	req := domain.FriendRequest{
		ID:         s.nextIDLocked("friend_requests"),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.RequestPending,
		CreatedAt:  time.Now(),
	}
	s.requests[req.ID] = req
	return req, nil
}

func (s *Store) GetFriendRequest(_ context.Context, id int64) (domain.FriendRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return domain.FriendRequest{}, domain.ErrRequestNotFound
	}
	return req, nil
}

func (s *Store) AcceptFriendRequest(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}
	req.Status = domain.RequestAccepted
	s.requests[id] = req
	return nil
}

func (s *Store) DeleteFriendRequest(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[id]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(s.requests, id)
	return nil
}

func (s *Store) PendingRequests(_ context.Context, userID int64) ([]domain.FriendRequestView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.FriendRequestView{}
	for _, r := range sortedValues(s.requests) {
		if r.ReceiverID != userID || r.Status != domain.RequestPending {
			continue
		}
		sender := s.users[r.SenderID]
		out = append(out, domain.FriendRequestView{
			RequestID:  r.ID,
			SenderID:   r.SenderID,
			FullName:   sender.FullName,
			University: sender.University,
		})
	}
	return out, nil
}

func (s *Store) CountPendingRequests(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.requests {
		if r.ReceiverID == userID && r.Status == domain.RequestPending {
			n++
		}
	}
	return n, nil
}

func (s *Store) Friends(_ context.Context, userID int64) ([]domain.UserSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserSummary{}
	for _, r := range sortedValues(s.requests) {
		if r.Status != domain.RequestAccepted {
			continue
		}
		switch userID {
		case r.SenderID:
			out = append(out, s.users[r.ReceiverID].Summary())
		case r.ReceiverID:
			out = append(out, s.users[r.SenderID].Summary())
		}
	}
	return out, nil
}
