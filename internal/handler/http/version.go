package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/models"
)

func (h *Handler) index(_ context.Context, _ *models.Request, _ guard.Values) (*models.Response, error) {
	return models.Text(http.StatusOK, "Hello, world!"), nil
}

func (h *Handler) getServerVersion(ctx context.Context, _ *models.Request, _ guard.Values) (*models.Response, error) {
	return models.Text(http.StatusOK, h.services.AppInfoService.GetAppVersion(ctx)), nil
}

// preflight answers CORS preflight requests; the headers are added by the
// CORS hook.
func (h *Handler) preflight(_ context.Context, _ *models.Request, _ guard.Values) (*models.Response, error) {
	return models.Empty(http.StatusNoContent), nil
}
