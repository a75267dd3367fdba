package memory

import (
	"context"
	"sort"

	"student-link/internal/domain"
)

func (s *Store) CreateMessage(_ context.Context, msg domain.Message) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = s.nextIDLocked("messages")
	s.messages[msg.ID] = msg
	return msg, nil
}

func (s *Store) Conversation(_ context.Context, a, b int64) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Message{}
	for _, m := range sortedValues(s.messages) {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) MarkConversationRead(_ context.Context, senderID, receiverID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			s.messages[id] = m
		}
	}
	return nil
}

func (s *Store) RecentChats(_ context.Context, userID int64) ([]domain.ChatPreview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := make(map[int64]domain.Message)
	for _, m := range sortedValues(s.messages) {
		var partner int64
		switch userID {
		case m.SenderID:
			partner = m.ReceiverID
		case m.ReceiverID:
			partner = m.SenderID
		default:
			continue
		}
		latest[partner] = m
	}
	out := make([]domain.ChatPreview, 0, len(latest))
	for partner, m := range latest {
		out = append(out, domain.ChatPreview{
			PartnerID:   partner,
			FullName:    s.users[partner].FullName,
			LastMessage: m.Body,
			At:          m.CreatedAt,
			Unread:      m.ReceiverID == userID && !m.Read,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.After(out[j].At)
		}
		return out[i].PartnerID < out[j].PartnerID
	})
	return out, nil
}

func (s *Store) CountUnreadMessages(_ context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, m := range s.messages {
		if m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}
