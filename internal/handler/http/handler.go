package http

import (
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/service"
)

type Handler struct {
	services *service.Services

	// loginLimiter is shared by every POST /login request.
	loginLimiter *rate.Limiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		loginLimiter: rate.NewLimiter(rate.Limit(cfg.LoginRatePerSecond), cfg.LoginBurst),
		logger:       logger,
	}
}
