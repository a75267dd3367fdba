package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"student-link/internal/domain"

	"golang.org/x/sync/errgroup"
)

const discoverLimit = 6

// NetworkService handles friend requests and private messaging.
type NetworkService struct {
	users         UserRepository
	friends       FriendRepository
	messages      MessageRepository
	notifications NotificationRepository
	inbox         *Inbox
	now           func() time.Time
}

func NewNetworkService(users UserRepository, friends FriendRepository, messages MessageRepository, notifications NotificationRepository, inbox *Inbox) *NetworkService {
	return &NetworkService{
		users:         users,
		friends:       friends,
		messages:      messages,
		notifications: notifications,
		inbox:         inbox,
		now:           time.Now,
	}
}

// Network loads the friends page.
func (s *NetworkService) Network(ctx context.Context, p domain.Principal) (domain.Network, error) {
	var n domain.Network
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		n.Requests, err = s.friends.PendingRequests(gctx, p.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		n.Friends, err = s.friends.Friends(gctx, p.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		n.RecentChats, err = s.messages.RecentChats(gctx, p.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		n.Discover, err = s.users.DiscoverUsers(gctx, p.UserID, discoverLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Network{}, err
	}
	return n, nil
}

// SendFriendRequest asks receiverID to connect and notifies them.
func (s *NetworkService) SendFriendRequest(ctx context.Context, p domain.Principal, receiverID int64) (domain.FriendRequest, error) {
	if receiverID == p.UserID {
		return domain.FriendRequest{}, domain.Invalid("cannot befriend yourself")
	}
	if _, err := s.users.GetUser(ctx, receiverID); err != nil {
		return domain.FriendRequest{}, err
	}
	req, err := s.friends.CreateFriendRequest(ctx, p.UserID, receiverID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	_, err = s.notifications.CreateNotification(ctx, domain.Notification{
		UserID:    receiverID,
		SenderID:  p.UserID,
		Kind:      domain.NotifyFriendRequest,
		Title:     "New Friend Request",
		Message:   fmt.Sprintf("%s wants to connect with you.", p.FullName),
		CreatedAt: s.now(),
	})
	if err != nil {
		return domain.FriendRequest{}, err
	}
	return req, nil
}

// AcceptFriendRequest may only be done by the receiver.
func (s *NetworkService) AcceptFriendRequest(ctx context.Context, p domain.Principal, requestID int64) error {
	req, err := s.friends.GetFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != p.UserID {
		return fmt.Errorf("accept request %d: %w", requestID, domain.ErrForbidden)
	}
	if req.Status == domain.RequestAccepted {
		return nil
	}
	return s.friends.AcceptFriendRequest(ctx, requestID)
}

// RejectFriendRequest deletes the request; either party may do it.
func (s *NetworkService) RejectFriendRequest(ctx context.Context, p domain.Principal, requestID int64) error {
	req, err := s.friends.GetFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != p.UserID && req.SenderID != p.UserID {
		return fmt.Errorf("reject request %d: %w", requestID, domain.ErrForbidden)
	}
	return s.friends.DeleteFriendRequest(ctx, requestID)
}

// OpenChat marks the partner's messages as read and returns the full history.
func (s *NetworkService) OpenChat(ctx context.Context, p domain.Principal, partnerID int64) (domain.Conversation, error) {
	partner, err := s.users.GetUser(ctx, partnerID)
	if err != nil {
		return domain.Conversation{}, err
	}
	if err := s.messages.MarkConversationRead(ctx, partnerID, p.UserID); err != nil {
		return domain.Conversation{}, err
	}
	msgs, err := s.messages.Conversation(ctx, p.UserID, partnerID)
	if err != nil {
		return domain.Conversation{}, err
	}
	return domain.Conversation{Partner: partner.Summary(), Messages: msgs}, nil
}

// SendMessage stores a private message and pushes it to live inboxes.
func (s *NetworkService) SendMessage(ctx context.Context, p domain.Principal, receiverID int64, body string) (domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Message{}, domain.Invalid("message is required")
	}
	if receiverID == p.UserID {
		return domain.Message{}, domain.Invalid("cannot message yourself")
	}
	if _, err := s.users.GetUser(ctx, receiverID); err != nil {
		return domain.Message{}, err
	}
	msg, err := s.messages.CreateMessage(ctx, domain.Message{
		SenderID:   p.UserID,
		ReceiverID: receiverID,
		Body:       body,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return domain.Message{}, err
	}
	s.inbox.Publish(msg)
	log.Printf("message %d from user %d to user %d", msg.ID, p.UserID, receiverID)
	return msg, nil
}

// Subscribe streams messages to or from the principal.
func (s *NetworkService) Subscribe(p domain.Principal) (<-chan domain.Message, func()) {
	return s.inbox.Subscribe(p.UserID)
}
