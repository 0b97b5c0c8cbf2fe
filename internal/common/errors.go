// Package common defines shared constants and sentinel errors used across
// the FileKeeper server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors, mapped by the transport collaborator to
	// client-visible failures.
	ErrorValidation       = errors.New("validation error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorInvalidOperation = errors.New("invalid operation")

	// ErrorStoreUnavailable indicates that a backing store (database,
	// session cache, object storage) cannot be reached. Never retried here;
	// surfaced as a generic server failure.
	ErrorStoreUnavailable = errors.New("store unavailable")

	ErrorInternal = errors.New("internal error")
)
