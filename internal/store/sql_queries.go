package store

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-forum/models"
)

const (
	usersTable      = "users"
	authKeysTable   = "authentication_keys"
	privilegesTable = "user_privileges"
	threadsTable    = "threads"
	commentsTable   = "comments"
)

var (
	userColumns    = []string{"unique_id", "username", "email", "password_hash", "password_salt", "registration_datetime"}
	authKeyColumns = []string{"unique_id", "user_id", "authentication_key", "expiration"}
	threadColumns  = []string{"unique_id", "title", "creator_uid", "creation_timestamp", "tag", "content"}
	commentColumns = []string{"unique_id", "thread_id", "creator_uid", "creation_timestamp", "content"}
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "email", "password_hash", "password_salt", "registration_datetime").
		Values(user.Username, nullString(user.Email), user.PasswordHash, user.PasswordSalt, user.RegisteredAt.UTC()).
		Suffix("RETURNING unique_id").
		ToSql()
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func buildSelectPrivilegesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("privilege").
		From(privilegesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("privilege").
		ToSql()
}

func buildGrantPrivilegeQuery(b sq.StatementBuilderType, userID int64, privilege string) (string, []any, error) {
	return b.Insert(privilegesTable).
		Columns("user_id", "privilege").
		Values(userID, privilege).
		ToSql()
}

// ── authentication keys ───────────────────────────────────────────────────────

func buildSaveAuthKeyQuery(b sq.StatementBuilderType, key models.AuthKey) (string, []any, error) {
	return b.Insert(authKeysTable).
		Columns("user_id", "authentication_key", "expiration").
		Values(key.UserID, key.Key, key.Expiration.UTC()).
		Suffix("RETURNING unique_id").
		ToSql()
}

func buildFindValidAuthKeyQuery(b sq.StatementBuilderType, key string, now time.Time) (string, []any, error) {
	return b.Select(authKeyColumns...).
		From(authKeysTable).
		Where(sq.Eq{"authentication_key": key}).
		Where(sq.Gt{"expiration": now.UTC()}).
		ToSql()
}

func buildDeleteExpiredAuthKeysQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(authKeysTable).
		Where(sq.LtOrEq{"expiration": now.UTC()}).
		ToSql()
}

func buildDeleteAuthKeyQuery(b sq.StatementBuilderType, key string) (string, []any, error) {
	return b.Delete(authKeysTable).
		Where(sq.Eq{"authentication_key": key}).
		ToSql()
}

// ── threads ───────────────────────────────────────────────────────────────────

func buildCreateThreadQuery(b sq.StatementBuilderType, thread models.Thread) (string, []any, error) {
	return b.Insert(threadsTable).
		Columns("title", "creator_uid", "creation_timestamp", "tag", "content").
		Values(thread.Title, thread.CreatorID, thread.CreatedAt.UTC(), thread.Tag, thread.Content).
		Suffix("RETURNING unique_id").
		ToSql()
}

func buildListThreadsQuery(b sq.StatementBuilderType, tag string) (string, []any, error) {
	query := b.Select(threadColumns...).
		From(threadsTable).
		OrderBy("creation_timestamp DESC", "unique_id DESC")
	if tag != "" {
		query = query.Where(sq.Eq{"tag": tag})
	}
	return query.ToSql()
}

func buildGetThreadQuery(b sq.StatementBuilderType, threadID int64) (string, []any, error) {
	return b.Select(threadColumns...).
		From(threadsTable).
		Where(sq.Eq{"unique_id": threadID}).
		ToSql()
}

func buildDeleteThreadQuery(b sq.StatementBuilderType, threadID int64) (string, []any, error) {
	return b.Delete(threadsTable).
		Where(sq.Eq{"unique_id": threadID}).
		ToSql()
}

// ── comments ──────────────────────────────────────────────────────────────────

func buildCreateCommentQuery(b sq.StatementBuilderType, comment models.Comment) (string, []any, error) {
	return b.Insert(commentsTable).
		Columns("thread_id", "creator_uid", "creation_timestamp", "content").
		Values(comment.ThreadID, comment.CreatorID, comment.CreatedAt.UTC(), comment.Content).
		Suffix("RETURNING unique_id").
		ToSql()
}

func buildListCommentsQuery(b sq.StatementBuilderType, threadID int64) (string, []any, error) {
	return b.Select(commentColumns...).
		From(commentsTable).
		Where(sq.Eq{"thread_id": threadID}).
		OrderBy("creation_timestamp ASC", "unique_id ASC").
		ToSql()
}

func buildGetCommentQuery(b sq.StatementBuilderType, commentID int64) (string, []any, error) {
	return b.Select(commentColumns...).
		From(commentsTable).
		Where(sq.Eq{"unique_id": commentID}).
		ToSql()
}

func buildDeleteCommentQuery(b sq.StatementBuilderType, commentID int64) (string, []any, error) {
	return b.Delete(commentsTable).
		Where(sq.Eq{"unique_id": commentID}).
		ToSql()
}
