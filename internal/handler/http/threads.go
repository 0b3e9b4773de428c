package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/models"
)

// listThreads lists threads newest first, filtered by the optional "tag"
// query parameter.
func (h *Handler) listThreads(ctx context.Context, req *models.Request, _ guard.Values) (*models.Response, error) {
	threads, err := h.services.ForumService.ListThreads(ctx, req.Query.Get("tag"))
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusOK, threads)
}

func (h *Handler) getThread(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	thread, err := h.services.ForumService.GetThread(ctx, guard.MustGet[int64](values, idParam))
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusOK, thread)
}

func (h *Handler) createThread(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	session := guard.MustGet[models.Session](values, sessionGuardName)
	newThread := guard.MustGet[models.NewThread](values, threadGuardName)

	thread, err := h.services.ForumService.CreateThread(ctx, session, newThread)
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusCreated, thread)
}

func (h *Handler) deleteThread(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	session := guard.MustGet[models.Session](values, sessionGuardName)

	if err := h.services.ForumService.DeleteThread(ctx, session, guard.MustGet[int64](values, idParam)); err != nil {
		return nil, err
	}
	return models.Empty(http.StatusNoContent), nil
}

func (h *Handler) listComments(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	comments, err := h.services.ForumService.ListComments(ctx, guard.MustGet[int64](values, idParam))
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusOK, comments)
}

func (h *Handler) createComment(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	session := guard.MustGet[models.Session](values, sessionGuardName)
	newComment := guard.MustGet[models.NewComment](values, commentGuardName)

	comment, err := h.services.ForumService.CreateComment(ctx, session, guard.MustGet[int64](values, idParam), newComment)
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusCreated, comment)
}

func (h *Handler) deleteComment(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	session := guard.MustGet[models.Session](values, sessionGuardName)

	if err := h.services.ForumService.DeleteComment(ctx, session, guard.MustGet[int64](values, idParam)); err != nil {
		return nil, err
	}
	return models.Empty(http.StatusNoContent), nil
}
