// Package apperrors holds the error taxonomy shared by the store, the
// auth service and the HTTP handlers.
package apperrors

import "errors"

var (
	// ErrUnauthenticated means the identity is missing or invalid
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized means the credentials did not match
	ErrUnauthorized = errors.New("invalid email or password")
	// ErrForbidden means the caller is authenticated but not entitled
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	// ErrConflict is a uniqueness violation
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid request")
	// ErrStorageFailure wraps a blob store failure
	ErrStorageFailure = errors.New("storage failure")
)
