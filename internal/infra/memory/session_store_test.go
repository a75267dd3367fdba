package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-link/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Hour, func() time.Time { return now })

	if err := store.Save(ctx, "sid", 42); err != nil {
		t.Fatalf("save: %v", err)
	}
	userID, err := store.Lookup(ctx, "sid")
	if err != nil || userID != 42 {
		t.Fatalf("expected user 42, got %d (%v)", userID, err)
	}

	if err := store.Delete(ctx, "sid"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Lookup(ctx, "sid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected session removed, got %v", err)
	}
}

func TestSessionStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Minute, func() time.Time { return now })

	_ = store.Save(ctx, "sid", 1)
	now = now.Add(2 * time.Minute)
	if _, err := store.Lookup(ctx, "sid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}
