// Package common defines shared constants and sentinel errors used across
// the BookIt persistence and session layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Store-level errors. ErrStoreUnavailable means the durable store failed
	// to open or a record operation failed underneath; the original cause is
	// logged at the session boundary, not returned.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Session-level (domain rule) errors. These are expected to be caught
	// and displayed by the presentation layer.
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrInactiveAccount          = errors.New("account is inactive")
	ErrUserNotFound             = errors.New("user not found")
	ErrIncorrectCurrentPassword = errors.New("current password is incorrect")
	ErrBusinessNotFound         = errors.New("business not found")
	ErrTooManyLoginAttempts     = errors.New("too many login attempts")
)
