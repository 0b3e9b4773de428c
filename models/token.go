package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthKey is a row of authentication_keys: an opaque key issued at login
// that stays valid until Expiration.
type AuthKey struct {
	KeyID      int64
	UserID     int64
	Key        string
	Expiration time.Time
}

// Expired reports whether the key is no longer valid at now.
func (k AuthKey) Expired(now time.Time) bool {
	return !now.Before(k.Expiration)
}

// Token wraps the signed bearer token handed to clients after login.
//
// The JWT subject carries the user ID and the "jti" claim carries the
// authentication key, so a token can be revoked by deleting its key.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the parsed "sub" claim.
	UserID int64 `json:"-"`

	// AuthKey is the "jti" claim.
	AuthKey string `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim.
func (t *Token) GetUserID() (int64, error) {
	userIDString, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session is what the authentication guard hands to handlers: the caller
// and the key the request was authenticated with.
type Session struct {
	User    User
	AuthKey string
}
