package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"student-link/internal/domain"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hashed, password string) bool
}

type TokenIssuer interface {
	Issue(p domain.Principal) (string, time.Time, error)
	Parse(raw string) (domain.Principal, error)
}

// AuthService owns registration and the lifecycle of the authenticated context.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	now      func() time.Time
}

func NewAuthService(users UserRepository, sessions SessionRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, sessions: sessions, hasher: hasher, tokens: tokens, now: time.Now}
}

type Registration struct {
	FullName   string
	WhatsApp   string
	University string
	Department string
	Level      string
	Password   string
}

// Login is the result of a successful login.
type Login struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in Registration) (domain.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.WhatsApp = strings.TrimSpace(in.WhatsApp)
	switch {
	case in.FullName == "":
		return domain.User{}, domain.Invalid("fullname is required")
	case in.WhatsApp == "":
		return domain.User{}, domain.Invalid("whatsapp is required")
	case len(in.Password) < 6:
		return domain.User{}, domain.Invalid("password must be at least 6 characters")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.CreateUser(ctx, domain.User{
		FullName:     in.FullName,
		WhatsApp:     in.WhatsApp,
		University:   strings.TrimSpace(in.University),
		Department:   strings.TrimSpace(in.Department),
		Level:        strings.TrimSpace(in.Level),
		PasswordHash: hashed,
		Role:         domain.RoleStudent,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return domain.User{}, err
	}
	log.Printf("registered user %d", user.ID)
	return user, nil
}

// Login checks credentials, opens an auth session and signs a token bound to it.
func (s *AuthService) Login(ctx context.Context, whatsapp, password string) (Login, error) {
	user, err := s.users.FindUserByWhatsApp(ctx, strings.TrimSpace(whatsapp))
	if errors.Is(err, domain.ErrNotFound) {
		return Login{}, domain.ErrBadCredentials
	}
	if err != nil {
		return Login{}, err
	}
	if !s.hasher.Matches(user.PasswordHash, password) {
		return Login{}, domain.ErrBadCredentials
	}

	p := domain.Principal{
		UserID:    user.ID,
		FullName:  user.FullName,
		Role:      user.Role,
		SessionID: uuid.NewString(),
	}
	if err := s.sessions.Save(ctx, p.SessionID, user.ID); err != nil {
		return Login{}, err
	}
	token, expires, err := s.tokens.Issue(p)
	if err != nil {
		_ = s.sessions.Delete(ctx, p.SessionID)
		return Login{}, err
	}
	log.Printf("user %d logged in", user.ID)
	return Login{Token: token, ExpiresAt: expires, User: user}, nil
}

// Authenticate resolves a token into a principal. The auth session must still be
// open and the role is read from the current account, not from the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claimed, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, err
	}
	userID, err := s.sessions.Lookup(ctx, claimed.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Principal{}, domain.ErrAuthSessionEnded
	}
	if err != nil {
		return domain.Principal{}, err
	}
	if userID != claimed.UserID {
		return domain.Principal{}, domain.ErrAuthSessionEnded
	}

	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Principal{}, domain.ErrAuthSessionEnded
	}
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.Principal{
		UserID:    user.ID,
		FullName:  user.FullName,
		Role:      user.Role,
		SessionID: claimed.SessionID,
	}, nil
}

// Logout closes the auth session; tokens bound to it stop authenticating.
func (s *AuthService) Logout(ctx context.Context, p domain.Principal) error {
	if p.SessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, p.SessionID)
}

// SetRole grants or revokes admin rights.
func (s *AuthService) SetRole(ctx context.Context, userID int64, role domain.Role) error {
	if role != domain.RoleAdmin && role != domain.RoleStudent {
		return domain.Invalid("unknown role %q", role)
	}
	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return err
	}
	log.Printf("user %d role set to %s", userID, role)
	return nil
}
