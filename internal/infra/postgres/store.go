package postgres

import (
	"context"
	"errors"
	"fmt"

	"student-link/internal/app"
	"student-link/internal/domain"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var (
	_ app.UserRepository         = (*Store)(nil)
	_ app.QuizRepository         = (*Store)(nil)
	_ app.PostRepository         = (*Store)(nil)
	_ app.NotificationRepository = (*Store)(nil)
	_ app.FriendRepository       = (*Store)(nil)
	_ app.MessageRepository      = (*Store)(nil)
	_ app.EventRepository        = (*Store)(nil)
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Store implements every relational repository on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool and checks it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorage, err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// notFound maps pgx.ErrNoRows to the given domain error.
func notFound(op string, err, missing error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return missing
	}
	return storageErr(op, err)
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func (s *Store) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageErr(op, err)
	}
	return n, nil
}

// execOne runs a statement that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, op string, missing error, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return storageErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return missing
	}
	return nil
}
