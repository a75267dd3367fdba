package app

import (
	"sync"

	"student-link/internal/domain"
)

// Inbox fans new chat messages out to the live connections of both parties.
type Inbox struct {
	mu          sync.Mutex
	subscribers map[int64]map[chan domain.Message]struct{}
}

func NewInbox() *Inbox {
	return &Inbox{subscribers: make(map[int64]map[chan domain.Message]struct{})}
}

// Subscribe returns a channel receiving messages sent to or by userID.
// The caller must invoke the returned cancel function to avoid leaks.
func (in *Inbox) Subscribe(userID int64) (<-chan domain.Message, func()) {
	ch := make(chan domain.Message, 8)

	in.mu.Lock()
	subs, ok := in.subscribers[userID]
	if !ok {
		subs = make(map[chan domain.Message]struct{})
		in.subscribers[userID] = subs
	}
	subs[ch] = struct{}{}
	in.mu.Unlock()

	cancel := func() {
		in.mu.Lock()
		defer in.mu.Unlock()
		subs, ok := in.subscribers[userID]
		if !ok {
			return
		}
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
		}
		if len(subs) == 0 {
			delete(in.subscribers, userID)
		}
	}
	return ch, cancel
}

// Publish delivers msg to the receiver and the sender.
func (in *Inbox) Publish(msg domain.Message) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.deliverLocked(msg.ReceiverID, msg)
	if msg.SenderID != msg.ReceiverID {
		in.deliverLocked(msg.SenderID, msg)
	}
}

func (in *Inbox) deliverLocked(userID int64, msg domain.Message) {
	for ch := range in.subscribers[userID] {
		select {
		case ch <- msg:
		default:
			// slow consumer: drop its oldest pending message
			select {
			case <-ch:
			default:
			}
			ch <- msg
		}
	}
}
