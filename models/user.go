package models

import "time"

// User is a forum account.
// Password material never leaves the server: both hash fields are excluded
// from JSON.
type User struct {
	// UserID is the primary key of the users table.
	UserID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the optional unique contact address.
	Email string `json:"email,omitempty"`

	// PasswordHash is the hex-encoded argon2id hash of the password.
	PasswordHash string `json:"-"`

	// PasswordSalt is the hex-encoded random salt used for PasswordHash.
	PasswordSalt string `json:"-"`

	// RegisteredAt is the registration moment (UTC).
	RegisteredAt time.Time `json:"registered_at"`
}

// NewUser is the body of a registration request.
type NewUser struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body of a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Privilege names stored in user_privileges.
const (
	// PrivilegeAdmin allows deleting any thread or comment.
	PrivilegeAdmin = "admin"
)
