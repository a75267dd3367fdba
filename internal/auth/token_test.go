package auth

import (
	"errors"
	"testing"
	"time"

	"student-link/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuerWithClock("secret", time.Hour, func() time.Time { return now })
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, expires, err := issuer.Issue(domain.Principal{UserID: 7, FullName: "Ada", Role: domain.RoleAdmin, SessionID: "sid-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expires.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", expires)
	}

	p, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.UserID != 7 || p.SessionID != "sid-1" || !domain.IsAdmin(p) {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestTokenRejectsExpiredAndForeign(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := now
	issuer, _ := NewTokenIssuerWithClock("secret", time.Minute, func() time.Time { return clock })
	other, _ := NewTokenIssuerWithClock("other-secret", time.Minute, func() time.Time { return clock })

	token, _, err := issuer.Issue(domain.Principal{UserID: 1, SessionID: "sid"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for foreign secret, got %v", err)
	}

	clock = now.Add(2 * time.Minute)
	if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)
	hashed, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !h.Matches(hashed, "hunter2") {
		t.Fatalf("expected password to match")
	}
	if h.Matches(hashed, "hunter3") {
		t.Fatalf("expected mismatch")
	}
}
