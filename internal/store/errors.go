package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when registering a user whose
	// username or email is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a user lookup matches no row.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrAuthKeyNotFound is returned when an authentication key does not
	// exist or has expired.
	ErrAuthKeyNotFound = errors.New("authentication key not found or expired")

	// ErrThreadNotFound is returned when a thread lookup or delete matches no
	// row, or when a comment references a missing thread.
	ErrThreadNotFound = errors.New("thread was not found")

	// ErrCommentNotFound is returned when a comment lookup or delete matches
	// no row.
	ErrCommentNotFound = errors.New("comment was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned by NewDB when the DSN is empty.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)
