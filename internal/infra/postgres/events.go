package postgres

import (
	"context"
	"time"

	"student-link/internal/domain"

	"github.com/jackc/pgx/v4"
)

const eventColumns = `id, title, event_date, location, description, event_link, event_image, COALESCE(submitted_by, 0), is_approved, created_at`

func (s *Store) CreateEvent(ctx context.Context, e domain.Event) (domain.Event, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO events (title, event_date, location, description, event_link, event_image, submitted_by, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		e.Title, e.EventDate, e.Location, e.Description, e.Link, e.ImageURL, nullableID(e.SubmittedBy), e.Approved).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return domain.Event{}, storageErr("create event", err)
	}
	return e, nil
}

func (s *Store) ListApprovedEvents(ctx context.Context) ([]domain.Event, error) {
	return s.queryEvents(ctx, "list events",
		`SELECT `+eventColumns+` FROM events WHERE is_approved ORDER BY event_date ASC, id ASC`)
}

func (s *Store) UpcomingEvents(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	return s.queryEvents(ctx, "upcoming events",
		`SELECT `+eventColumns+` FROM events WHERE is_approved AND event_date >= $1 ORDER BY event_date ASC, id ASC LIMIT $2`,
		from, limit)
}

func (s *Store) ListAllEvents(ctx context.Context) ([]domain.Event, error) {
	return s.queryEvents(ctx, "list all events",
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC`)
}

func (s *Store) queryEvents(ctx context.Context, op, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return events, nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.EventDate, &e.Location, &e.Description, &e.Link, &e.ImageURL,
		&e.SubmittedBy, &e.Approved, &e.CreatedAt)
	return e, err
}

func (s *Store) ApproveEvent(ctx context.Context, id int64) error {
	return s.execOne(ctx, "approve event", domain.ErrEventNotFound,
		`UPDATE events SET is_approved = TRUE WHERE id = $1`, id)
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	return s.execOne(ctx, "delete event", domain.ErrEventNotFound, `DELETE FROM events WHERE id = $1`, id)
}

func (s *Store) CountEvents(ctx context.Context) (int, error) {
	return s.count(ctx, "count events", `SELECT COUNT(*) FROM events`)
}
