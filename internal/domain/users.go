package domain

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is a registered student or administrator.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullname"`
	WhatsApp     string    `json:"whatsapp"`
	University   string    `json:"university"`
	Department   string    `json:"department"`
	Level        string    `json:"level"`
	Bio          string    `json:"bio"`
	ProfilePic   string    `json:"profile_pic"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary is the short form used in lists.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		FullName:   u.FullName,
		University: u.University,
		Department: u.Department,
		Verified:   u.Verified,
	}
}

type UserSummary struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullname"`
	University string `json:"university"`
	Department string `json:"department,omitempty"`
	Verified   bool   `json:"is_verified"`
}

// ProfileUpdate replaces the editable profile fields of a user.
type ProfileUpdate struct {
	FullName   string
	WhatsApp   string
	University string
	Department string
	Level      string
	Bio        string
	ProfilePic string
}

// Principal is the authenticated context handed to every operation.
// It is created on login and stops resolving once its auth session is deleted.
type Principal struct {
	UserID    int64  `json:"user_id"`
	FullName  string `json:"fullname"`
	Role      Role   `json:"role"`
	SessionID string `json:"-"`
}

// IsAdmin is the single authorization policy for admin-only operations.
func IsAdmin(p Principal) bool {
	return p.Role == RoleAdmin
}
