package store

import "github.com/MKhiriev/go-forum/internal/logger"

// Repositories bundles every repository backed by one database.
type Repositories struct {
	UserRepository    UserRepository
	AuthKeyRepository AuthKeyRepository
	ThreadRepository  ThreadRepository
	CommentRepository CommentRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db, logger),
		AuthKeyRepository: NewAuthKeyRepository(db, logger),
		ThreadRepository:  NewThreadRepository(db, logger),
		CommentRepository: NewCommentRepository(db, logger),
	}
}
