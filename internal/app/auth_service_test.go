package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"student-link/internal/app"
	"student-link/internal/auth"
	"student-link/internal/domain"
	"student-link/internal/infra/memory"
)

func newAuthService(t *testing.T) (*app.AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token issuer: %v", err)
	}
	service := app.NewAuthService(store, memory.NewSessionStore(time.Hour), auth.NewPasswordHasher(4), tokens)
	return service, store
}

func TestRegisterLoginAuthenticateLogout(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	user, err := service.Register(ctx, app.Registration{
		FullName:   " Ada Obi ",
		WhatsApp:   "08030000000",
		University: "UNILAG",
		Password:   "secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.FullName != "Ada Obi" || user.Role != domain.RoleStudent {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}

	if _, err := service.Login(ctx, "08030000000", "wrong-pass"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := service.Login(ctx, "0000", "secret1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown number, got %v", err)
	}

	login, err := service.Login(ctx, "08030000000", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := service.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.UserID != user.ID || p.SessionID == "" {
		t.Fatalf("unexpected principal %+v", p)
	}

	if err := service.Logout(ctx, p); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := service.Authenticate(ctx, login.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected token to stop working after logout, got %v", err)
	}
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	in := app.Registration{FullName: "Ada", WhatsApp: "0803", Password: "secret1"}
	if _, err := service.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(ctx, in); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	bad := []app.Registration{
		{WhatsApp: "1", Password: "secret1"},
		{FullName: "x", Password: "secret1"},
		{FullName: "x", WhatsApp: "2", Password: "123"},
	}
	for i, b := range bad {
		if _, err := service.Register(ctx, b); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestAuthenticateReadsCurrentRole(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	user, err := service.Register(ctx, app.Registration{FullName: "Ada", WhatsApp: "0803", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := service.Login(ctx, "0803", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := service.SetRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("set role: %v", err)
	}

	p, err := service.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !domain.IsAdmin(p) {
		t.Fatalf("expected promoted principal, got role %q", p.Role)
	}
	if err := service.SetRole(ctx, user.ID, "root"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid role, got %v", err)
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	service, _ := newAuthService(t)
	if _, err := service.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
