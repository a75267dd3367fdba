package memory

import (
	"context"
	"sort"
	"time"

	"student-link/internal/domain"
)

func (s *Store) CreateEvent(_ context.Context, e domain.Event) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextIDLocked("events")
	s.events[e.ID] = e
	return e, nil
}

func (s *Store) ListApprovedEvents(_ context.Context) ([]domain.Event, error) {
	return s.approvedFrom(time.Time{}, 0), nil
}

func (s *Store) UpcomingEvents(_ context.Context, from time.Time, limit int) ([]domain.Event, error) {
	return s.approvedFrom(from, limit), nil
}

func (s *Store) approvedFrom(from time.Time, limit int) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Event{}
	for _, e := range sortedValues(s.events) {
		if e.Approved && !e.EventDate.Before(from) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *Store) ListAllEvents(_ context.Context) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := sortedValues(s.events)
	out := make([]domain.Event, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *Store) ApproveEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.Approved = true
	s.events[id] = e
	return nil
}

func (s *Store) DeleteEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) CountEvents(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), nil
}
