package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

// CreateComment stores a reply. A missing thread yields [ErrThreadNotFound].
func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	query, args, err := buildCreateCommentQuery(r.db.builder, comment)
	if err != nil {
		return models.Comment{}, buildErr(err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&comment.CommentID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentRepository.CreateComment").Msg("error inserting comment")
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return models.Comment{}, ErrThreadNotFound
		}
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return comment, nil
}

// ListComments returns the comments of a thread oldest first.
func (r *commentRepository) ListComments(ctx context.Context, threadID int64) ([]models.Comment, error) {
	query, args, err := buildListCommentsQuery(r.db.builder, threadID)
	if err != nil {
		return nil, buildErr(err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentRepository.ListComments").Msg("error selecting comments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err = rows.Scan(&c.CommentID, &c.ThreadID, &c.CreatorID, &c.CreatedAt, &c.Content); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return comments, nil
}

func (r *commentRepository) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	query, args, err := buildGetCommentQuery(r.db.builder, commentID)
	if err != nil {
		return models.Comment{}, buildErr(err)
	}

	var c models.Comment
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&c.CommentID, &c.ThreadID, &c.CreatorID, &c.CreatedAt, &c.Content)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Comment{}, ErrCommentNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*commentRepository.GetComment").Msg("error selecting comment")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return c, nil
}

func (r *commentRepository) DeleteComment(ctx context.Context, commentID int64) error {
	query, args, err := buildDeleteCommentQuery(r.db.builder, commentID)
	if err != nil {
		return buildErr(err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*commentRepository.DeleteComment").Msg("error deleting comment")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrCommentNotFound
	}
	return nil
}
