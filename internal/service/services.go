package service

import (
	"fmt"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/crypto"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	ForumService   ForumService
	AppInfoService AppInfoService
}

func NewServices(repositories *store.Repositories, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService := NewAuthService(
		repositories.UserRepository,
		repositories.AuthKeyRepository,
		crypto.NewPasswordHasher(),
		cfg,
		logger,
	)

	return &Services{
		AuthService:    authService,
		UserService:    NewUserService(repositories.UserRepository, logger),
		ForumService:   NewForumService(repositories.ThreadRepository, repositories.CommentRepository, authService, logger),
		AppInfoService: appInfoService,
	}, nil
}
