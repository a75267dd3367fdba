package auth

import (
	"errors"
	"fmt"
	"time"

	"student-link/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. The session id ties the token to a
// server-side auth session so logout can revoke it before expiry.
type Claims struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"fullname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	return NewTokenIssuerWithClock(secret, ttl, time.Now)
}

func NewTokenIssuerWithClock(secret string, ttl time.Duration, now func() time.Time) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// TTL is how long issued tokens (and their auth sessions) live.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs a token for the principal.
func (t *TokenIssuer) Issue(p domain.Principal) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := Claims{
		UserID:   p.UserID,
		FullName: p.FullName,
		Role:     string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        p.SessionID,
			Subject:   fmt.Sprint(p.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies the signature and expiry and returns the embedded principal.
func (t *TokenIssuer) Parse(raw string) (domain.Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.ID == "" || claims.UserID == 0 {
		return domain.Principal{}, fmt.Errorf("%w: incomplete token", domain.ErrUnauthorized)
	}
	return domain.Principal{
		UserID:    claims.UserID,
		FullName:  claims.FullName,
		Role:      domain.Role(claims.Role),
		SessionID: claims.ID,
	}, nil
}
