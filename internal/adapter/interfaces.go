// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the forum HTTP API.
//
// The primary abstraction is [ServerAdapter]. Non-2xx responses are mapped
// to the sentinel errors in errors.go so callers can use [errors.Is]
// (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-forum/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to a forum server. Implementations keep the bearer
// token returned by Login and attach it to authenticated requests.
type ServerAdapter interface {
	// SetToken stores the bearer token used by authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// GetAppVersion returns the server version string.
	GetAppVersion(ctx context.Context) (string, error)

	// Register creates an account.
	Register(ctx context.Context, user models.NewUser) (models.User, error)

	// Login exchanges credentials for a token and stores it via SetToken.
	Login(ctx context.Context, credentials models.LoginRequest) (models.LoginResponse, error)

	// Logout revokes the stored token on the server and forgets it.
	Logout(ctx context.Context) error

	// GetUser looks a user up by numeric ID or by username.
	GetUser(ctx context.Context, idOrUsername string) (models.User, error)

	ListThreads(ctx context.Context, tag string) ([]models.Thread, error)
	GetThread(ctx context.Context, threadID int64) (models.Thread, error)
	CreateThread(ctx context.Context, thread models.NewThread) (models.Thread, error)
	DeleteThread(ctx context.Context, threadID int64) error

	ListComments(ctx context.Context, threadID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, threadID int64, comment models.NewComment) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}
