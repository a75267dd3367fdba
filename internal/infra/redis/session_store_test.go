package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-link/internal/domain"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, ttl), mr
}

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t, time.Minute)

	if err := store.Save(ctx, "abc", 42); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("auth:session:abc") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("auth:session:abc"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %v", ttl)
	}

	userID, err := store.Lookup(ctx, "abc")
	if err != nil || userID != 42 {
		t.Fatalf("expected user 42, got %d (%v)", userID, err)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("auth:session:abc") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, err := store.Lookup(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionStoreExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t, time.Minute)

	if err := store.Save(ctx, "abc", 7); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Lookup(ctx, "abc"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}

func TestSessionStoreReportsStorageFailure(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	mr.SetError("READONLY")

	if err := store.Save(context.Background(), "abc", 1); !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
