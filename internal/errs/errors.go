// Package errs defines the typed errors shared across services and handlers.
package errs

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

func Unauthorized(msg string) error {
	return &AuthorizationError{Msg: msg}
}

// StateConflictError reports an operation invalid for the entity's current
// status, e.g. editing a post that already left draft.
type StateConflictError struct {
	Msg string
}

func (e *StateConflictError) Error() string { return e.Msg }

func StateConflict(format string, args ...any) error {
	return &StateConflictError{Msg: fmt.Sprintf(format, args...)}
}

// GenerationError aborts the whole draft-generation pipeline; no partial
// post is ever persisted behind one.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "failed to generate caption: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

func Generation(err error) error {
	return &GenerationError{Err: err}
}

// PlatformPublishError is collected per platform by the publisher and never
// propagated across other platforms' attempts.
type PlatformPublishError struct {
	Platform string
	Err      error
}

func (e *PlatformPublishError) Error() string {
	return fmt.Sprintf("failed to post to %s: %v", e.Platform, e.Err)
}
func (e *PlatformPublishError) Unwrap() error { return e.Err }

type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "persistence failure: " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(err error) error {
	return &PersistenceError{Err: err}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}
