package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

const (
	idParam       = "id"
	usernameParam = "username"

	userGuardName    = "user"
	loginGuardName   = "credentials"
	threadGuardName  = "thread"
	commentGuardName = "comment"
)

func (h *Handler) register(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	newUser := guard.MustGet[models.NewUser](values, userGuardName)

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, newUser)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Int64("id", registeredUser.UserID).Msg("user registered")
	return models.JSON(http.StatusCreated, registeredUser)
}

func (h *Handler) login(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	credentials := guard.MustGet[models.LoginRequest](values, loginGuardName)

	token, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug().Int64("id", token.UserID).Msg("user successfully logged in")

	resp, err := models.JSON(http.StatusOK, models.LoginResponse{
		Token:     token.SignedString,
		ExpiresAt: token.ExpiresAt.Time,
	})
	if err != nil {
		return nil, err
	}
	resp.Header.Set("Authorization", "Bearer "+token.SignedString)
	return resp, nil
}

func (h *Handler) logout(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	session := guard.MustGet[models.Session](values, sessionGuardName)

	if err := h.services.AuthService.Logout(ctx, session); err != nil {
		return nil, err
	}
	return models.Empty(http.StatusNoContent), nil
}

func (h *Handler) getUserByID(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	user, err := h.services.UserService.GetUserByID(ctx, guard.MustGet[int64](values, idParam))
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusOK, user)
}

func (h *Handler) getUserByUsername(ctx context.Context, _ *models.Request, values guard.Values) (*models.Response, error) {
	user, err := h.services.UserService.GetUserByUsername(ctx, guard.MustGet[string](values, usernameParam))
	if err != nil {
		return nil, err
	}
	return models.JSON(http.StatusOK, user)
}
