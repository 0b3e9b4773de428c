package service

import (
	"context"

	"github.com/MKhiriev/go-forum/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, newUser models.NewUser) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.Token, error)
	Authenticate(ctx context.Context, tokenString string) (models.Session, error)
	Logout(ctx context.Context, session models.Session) error
	HasPrivilege(ctx context.Context, userID int64, privilege string) (bool, error)
}

type UserService interface {
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

type ForumService interface {
	CreateThread(ctx context.Context, session models.Session, newThread models.NewThread) (models.Thread, error)
	ListThreads(ctx context.Context, tag string) ([]models.Thread, error)
	GetThread(ctx context.Context, threadID int64) (models.Thread, error)
	DeleteThread(ctx context.Context, session models.Session, threadID int64) error

	CreateComment(ctx context.Context, session models.Session, threadID int64, newComment models.NewComment) (models.Comment, error)
	ListComments(ctx context.Context, threadID int64) ([]models.Comment, error)
	DeleteComment(ctx context.Context, session models.Session, commentID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
