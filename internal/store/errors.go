package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// credential fails because the username is already taken. The database
	// uniqueness constraint on username is the authoritative source of this
	// error, so two concurrent registrations can never both succeed.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrCredentialNotFound is returned when a query expected to match a
	// credential record produces an empty result set.
	ErrCredentialNotFound = errors.New("credential was not found")

	// ErrNoFactorProvided is returned when a credential with neither a
	// password hash nor a face descriptor would be persisted. Such a record
	// is invalid and must never reach the database.
	ErrNoFactorProvided = errors.New("credential must carry at least one factor")
)
