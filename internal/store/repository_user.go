// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" and "user_privileges" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user and returns it with UserID set.
//
// Error handling:
//   - unique violation on username or email → [ErrUsernameAlreadyExists].
//   - any other driver-level error → [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, buildErr(err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByUsername returns the user with the given username or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"username": username})
}

// FindUserByID returns the user with the given ID or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"unique_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder, where)
	if err != nil {
		return models.User{}, buildErr(err)
	}

	var (
		user  models.User
		email sql.NullString
	)
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&user.UserID, &user.Username, &email, &user.PasswordHash, &user.PasswordSalt, &user.RegisteredAt)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	user.Email = email.String
	return user, nil
}

// Privileges lists the privilege names granted to the user.
func (r *userRepository) Privileges(ctx context.Context, userID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPrivilegesQuery(r.db.builder, userID)
	if err != nil {
		return nil, buildErr(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Privileges").Msg("error selecting privileges")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	privileges := make([]string, 0)
	for rows.Next() {
		var privilege string
		if err = rows.Scan(&privilege); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		privileges = append(privileges, privilege)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return privileges, nil
}

// GrantPrivilege gives privilege to the user. Granting a privilege twice is
// not an error.
func (r *userRepository) GrantPrivilege(ctx context.Context, userID int64, privilege string) error {
	query, args, err := buildGrantPrivilegeQuery(r.db.builder, userID, privilege)
	if err != nil {
		return buildErr(err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return nil
		}
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return ErrNoUserWasFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.GrantPrivilege").Msg("error granting privilege")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
