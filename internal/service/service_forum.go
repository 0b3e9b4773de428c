package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/store"
	"github.com/MKhiriev/go-forum/models"
)

// forumService implements ForumService on top of the thread and comment
// repositories. Deletions are allowed to the author of the post and to users
// holding [models.PrivilegeAdmin].
type forumService struct {
	threadRepository  store.ThreadRepository
	commentRepository store.CommentRepository
	privileges        privilegeChecker

	now    func() time.Time
	logger *logger.Logger
}

type privilegeChecker interface {
	HasPrivilege(ctx context.Context, userID int64, privilege string) (bool, error)
}

func NewForumService(
	threadRepository store.ThreadRepository,
	commentRepository store.CommentRepository,
	privileges privilegeChecker,
	logger *logger.Logger,
) ForumService {
	return &forumService{
		threadRepository:  threadRepository,
		commentRepository: commentRepository,
		privileges:        privileges,
		now:               time.Now,
		logger:            logger,
	}
}

func (s *forumService) CreateThread(ctx context.Context, session models.Session, newThread models.NewThread) (models.Thread, error) {
	title := strings.TrimSpace(newThread.Title)
	if title == "" || newThread.Content == "" {
		return models.Thread{}, ErrInvalidDataProvided
	}

	thread, err := s.threadRepository.CreateThread(ctx, models.Thread{
		Title:     title,
		CreatorID: session.User.UserID,
		CreatedAt: s.now().UTC(),
		Tag:       strings.TrimSpace(newThread.Tag),
		Content:   newThread.Content,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", session.User.UserID).Msg("thread creation failed")
		return models.Thread{}, fmt.Errorf("thread creation failed: %w", err)
	}

	return thread, nil
}

// ListThreads returns threads newest first. An empty tag lists all threads.
func (s *forumService) ListThreads(ctx context.Context, tag string) ([]models.Thread, error) {
	return s.threadRepository.ListThreads(ctx, strings.TrimSpace(tag))
}

func (s *forumService) GetThread(ctx context.Context, threadID int64) (models.Thread, error) {
	return s.threadRepository.GetThread(ctx, threadID)
}

func (s *forumService) DeleteThread(ctx context.Context, session models.Session, threadID int64) error {
	thread, err := s.threadRepository.GetThread(ctx, threadID)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, session, thread.CreatorID); err != nil {
		return err
	}

	return s.threadRepository.DeleteThread(ctx, threadID)
}

func (s *forumService) CreateComment(ctx context.Context, session models.Session, threadID int64, newComment models.NewComment) (models.Comment, error) {
	if strings.TrimSpace(newComment.Content) == "" {
		return models.Comment{}, ErrInvalidDataProvided
	}

	comment, err := s.commentRepository.CreateComment(ctx, models.Comment{
		ThreadID:  threadID,
		CreatorID: session.User.UserID,
		CreatedAt: s.now().UTC(),
		Content:   newComment.Content,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("thread_id", threadID).Msg("comment creation failed")
		return models.Comment{}, fmt.Errorf("comment creation failed: %w", err)
	}

	return comment, nil
}

// ListComments returns the comments of an existing thread oldest first.
func (s *forumService) ListComments(ctx context.Context, threadID int64) ([]models.Comment, error) {
	if _, err := s.threadRepository.GetThread(ctx, threadID); err != nil {
		return nil, err
	}
	return s.commentRepository.ListComments(ctx, threadID)
}

func (s *forumService) DeleteComment(ctx context.Context, session models.Session, commentID int64) error {
	comment, err := s.commentRepository.GetComment(ctx, commentID)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, session, comment.CreatorID); err != nil {
		return err
	}

	return s.commentRepository.DeleteComment(ctx, commentID)
}

// authorize lets the owner through and otherwise requires the admin privilege.
func (s *forumService) authorize(ctx context.Context, session models.Session, ownerID int64) error {
	if session.User.UserID == ownerID {
		return nil
	}

	isAdmin, err := s.privileges.HasPrivilege(ctx, session.User.UserID, models.PrivilegeAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		logger.FromContext(ctx).Warn().
			Int64("user_id", session.User.UserID).
			Int64("owner_id", ownerID).
			Msg("delete forbidden")
		return ErrForbidden
	}
	return nil
}
