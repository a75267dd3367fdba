package app

import (
	"context"
	"log"
	"strings"
	"time"

	"student-link/internal/domain"
)

// EventService lists campus events and runs the admin approval queue.
type EventService struct {
	events EventRepository
	now    func() time.Time
}

func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events, now: time.Now}
}

// Events lists approved events by date.
func (s *EventService) Events(ctx context.Context) ([]domain.Event, error) {
	return s.events.ListApprovedEvents(ctx)
}

type NewEvent struct {
	Title       string
	Date        time.Time
	Location    string
	Description string
	Link        string
	ImageURL    string
}

// Submit stores an event. Events from admins go live immediately, others wait for approval.
func (s *EventService) Submit(ctx context.Context, p domain.Principal, in NewEvent) (domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Event{}, domain.Invalid("title is required")
	}
	if in.Date.IsZero() {
		return domain.Event{}, domain.Invalid("date is required")
	}
	event, err := s.events.CreateEvent(ctx, domain.Event{
		Title:       title,
		EventDate:   in.Date,
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
		Link:        strings.TrimSpace(in.Link),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		SubmittedBy: p.UserID,
		Approved:    domain.IsAdmin(p),
		CreatedAt:   s.now(),
	})
	if err != nil {
		return domain.Event{}, err
	}
	log.Printf("event %d submitted by user %d (approved=%t)", event.ID, p.UserID, event.Approved)
	return event, nil
}

// Manage lists every event, newest first.
func (s *EventService) Manage(ctx context.Context, p domain.Principal) ([]domain.Event, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.events.ListAllEvents(ctx)
}

func (s *EventService) Approve(ctx context.Context, p domain.Principal, id int64) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	return s.events.ApproveEvent(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if err := requireAdmin(p); err != nil {
		return err
	}
	return s.events.DeleteEvent(ctx, id)
}
