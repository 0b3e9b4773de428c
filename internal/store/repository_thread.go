package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

type threadRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewThreadRepository(db *DB, logger *logger.Logger) ThreadRepository {
	logger.Debug().Msg("creating thread repository")
	return &threadRepository{
		db:     db,
		logger: logger,
	}
}

func (r *threadRepository) CreateThread(ctx context.Context, thread models.Thread) (models.Thread, error) {
	query, args, err := buildCreateThreadQuery(r.db.builder, thread)
	if err != nil {
		return models.Thread{}, buildErr(err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&thread.ThreadID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*threadRepository.CreateThread").Msg("error inserting thread")
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return models.Thread{}, ErrNoUserWasFound
		}
		return models.Thread{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return thread, nil
}

// ListThreads returns threads newest first, restricted to tag when it is
// not empty.
func (r *threadRepository) ListThreads(ctx context.Context, tag string) ([]models.Thread, error) {
	query, args, err := buildListThreadsQuery(r.db.builder, tag)
	if err != nil {
		return nil, buildErr(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*threadRepository.ListThreads").Msg("error selecting threads")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	threads := make([]models.Thread, 0)
	for rows.Next() {
		var t models.Thread
		if err = rows.Scan(&t.ThreadID, &t.Title, &t.CreatorID, &t.CreatedAt, &t.Tag, &t.Content); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		threads = append(threads, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return threads, nil
}

func (r *threadRepository) GetThread(ctx context.Context, threadID int64) (models.Thread, error) {
	query, args, err := buildGetThreadQuery(r.db.builder, threadID)
	if err != nil {
		return models.Thread{}, buildErr(err)
	}

	var t models.Thread
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&t.ThreadID, &t.Title, &t.CreatorID, &t.CreatedAt, &t.Tag, &t.Content)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Thread{}, ErrThreadNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*threadRepository.GetThread").Msg("error selecting thread")
		return models.Thread{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return t, nil
}

// DeleteThread removes the thread and, through the cascade, its comments.
func (r *threadRepository) DeleteThread(ctx context.Context, threadID int64) error {
	query, args, err := buildDeleteThreadQuery(r.db.builder, threadID)
	if err != nil {
		return buildErr(err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*threadRepository.DeleteThread").Msg("error deleting thread")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrThreadNotFound
	}
	return nil
}
