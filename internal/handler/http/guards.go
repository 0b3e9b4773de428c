package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/service"
	"github.com/MKhiriev/go-forum/internal/utils"
	"github.com/MKhiriev/go-forum/models"
)

// sessionGuardName is the key under which the auth guard stores the
// authenticated [models.Session].
const sessionGuardName = "session"

// auth is a guard enforcing bearer-token authentication.
//
// It inspects the "Authorization" header, extracts the bearer token and
// resolves it through the [service.AuthService] managed by the application
// state. On success the caller's [models.Session] is bound under
// sessionGuardName.
//
// The guard fails with 401 Unauthorized when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header is not a bearer token ([ErrInvalidAuthorizationHeader]);
//   - the token is invalid, expired or revoked
//     ([service.ErrTokenIsExpiredOrInvalid]).
//
// Storage failures and a missing AuthService fail with 500 and are logged.
func auth() guard.Guard {
	return guard.Func(sessionGuardName, func(ctx context.Context, req *models.Request, _ guard.Values, state *guard.State) guard.Outcome {
		log := logger.FromContext(ctx)

		authHeader := req.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			return guard.Fail(http.StatusUnauthorized, ErrEmptyAuthorizationHeader)
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			return guard.Fail(http.StatusUnauthorized, ErrInvalidAuthorizationHeader)
		}

		authService, ok := guard.Managed[service.AuthService](state)
		if !ok {
			log.Error().Err(ErrAuthServiceNotManaged).Send()
			return guard.Fail(http.StatusInternalServerError, nil)
		}

		session, err := authService.Authenticate(ctx, tokenString)
		switch {
		case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
			return guard.Fail(http.StatusUnauthorized, err)
		case err != nil:
			log.Err(err).Msg("authentication failed")
			return guard.Fail(http.StatusInternalServerError, nil)
		}

		return guard.Succeed(session)
	})
}

// NewState builds the application state handed to guards.
func NewState(services *service.Services) *guard.State {
	return guard.NewState(services.AuthService)
}
