package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

type authKeyRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAuthKeyRepository(db *DB, logger *logger.Logger) AuthKeyRepository {
	logger.Debug().Msg("creating authentication key repository")
	return &authKeyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *authKeyRepository) SaveKey(ctx context.Context, key models.AuthKey) (models.AuthKey, error) {
	query, args, err := buildSaveAuthKeyQuery(r.db.builder, key)
	if err != nil {
		return models.AuthKey{}, buildErr(err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&key.KeyID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authKeyRepository.SaveKey").Msg("error inserting key")
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return models.AuthKey{}, ErrNoUserWasFound
		}
		return models.AuthKey{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return key, nil
}

// FindValidKey returns key if it exists and expires after now.
func (r *authKeyRepository) FindValidKey(ctx context.Context, key string, now time.Time) (models.AuthKey, error) {
	query, args, err := buildFindValidAuthKeyQuery(r.db.builder, key, now)
	if err != nil {
		return models.AuthKey{}, buildErr(err)
	}

	var found models.AuthKey
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&found.KeyID, &found.UserID, &found.Key, &found.Expiration)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.AuthKey{}, ErrAuthKeyNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*authKeyRepository.FindValidKey").Msg("error selecting key")
		return models.AuthKey{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

func (r *authKeyRepository) DeleteKey(ctx context.Context, key string) error {
	query, args, err := buildDeleteAuthKeyQuery(r.db.builder, key)
	if err != nil {
		return buildErr(err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAuthKeyNotFound
	}
	return nil
}

// DeleteExpired removes every key that expired at or before now and returns
// how many were removed.
func (r *authKeyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredAuthKeysQuery(r.db.builder, now)
	if err != nil {
		return 0, buildErr(err)
	}

	var res sql.Result
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		res, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authKeyRepository.DeleteExpired").Msg("error deleting expired keys")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}
