package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is the root of every "referenced record is absent" error.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks malformed payloads or missing required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when credentials are missing, wrong or revoked.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when an authenticated user may not perform an operation.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates the write collides with an existing record.
	ErrConflict = errors.New("conflict")
	// ErrStorage wraps failures of the underlying persistence layer.
	ErrStorage = errors.New("storage failure")
)

var (
	ErrSessionNotFound  = fmt.Errorf("quiz session %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("post %w", ErrNotFound)
	ErrEventNotFound    = fmt.Errorf("event %w", ErrNotFound)
	ErrRequestNotFound  = fmt.Errorf("friend request %w", ErrNotFound)
	ErrAuthSessionEnded = fmt.Errorf("auth session ended: %w", ErrUnauthorized)
	ErrBadCredentials   = fmt.Errorf("wrong number or password: %w", ErrUnauthorized)
	ErrAdminOnly        = fmt.Errorf("admin only: %w", ErrForbidden)
	ErrDuplicateAccount = fmt.Errorf("whatsapp number already registered: %w", ErrConflict)
	ErrDuplicateRequest = fmt.Errorf("friend request already exists: %w", ErrConflict)
)

// Invalid builds an ErrInvalidInput with a field-level reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ImportIssue describes why one record of a question batch was rejected.
type ImportIssue struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportError rejects a whole question batch. Nothing from the batch is stored.
type ImportError struct {
	Issues []ImportIssue `json:"issues"`
}

func (e *ImportError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Index < 0 {
			parts = append(parts, issue.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("record %d: %s", issue.Index, issue.Reason))
	}
	return "invalid question batch: " + strings.Join(parts, "; ")
}

func (e *ImportError) Unwrap() error { return ErrInvalidInput }
