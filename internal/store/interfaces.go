package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-forum/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	Privileges(ctx context.Context, userID int64) ([]string, error)
	GrantPrivilege(ctx context.Context, userID int64, privilege string) error
}

type AuthKeyRepository interface {
	SaveKey(ctx context.Context, key models.AuthKey) (models.AuthKey, error)
	FindValidKey(ctx context.Context, key string, now time.Time) (models.AuthKey, error)
	DeleteKey(ctx context.Context, key string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ThreadRepository interface {
	CreateThread(ctx context.Context, thread models.Thread) (models.Thread, error)
	ListThreads(ctx context.Context, tag string) ([]models.Thread, error)
	GetThread(ctx context.Context, threadID int64) (models.Thread, error)
	DeleteThread(ctx context.Context, threadID int64) error
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	ListComments(ctx context.Context, threadID int64) ([]models.Comment, error)
	GetComment(ctx context.Context, commentID int64) (models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}
