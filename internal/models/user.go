package models

import (
	"time"
)

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleSupport UserRole = "support"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID          int64      `db:"id"`
	Username    string     `db:"username"`
	Email       string     `db:"email"`
	Password    string     `db:"password"`
	Role        UserRole   `db:"role"`
	IsVerified  bool       `db:"is_verified"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

// Session is the server-side record behind a session cookie.
type Session struct {
	SID       string    `db:"sid"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
