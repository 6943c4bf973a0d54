package service

import "errors"

var (
	// ErrUsernameTaken is returned when signing up with an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The single value guarantees the two cases are byte-identical
	// to callers, so login failures never reveal which identities exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFoundError carries a caller-facing message. The message text is part of
// the contract: a missing task ID and a missing task share the kind but not
// the message.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError reports malformed input that reached the service despite
// upstream schema checks.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
