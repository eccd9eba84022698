package models

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is implemented by domain errors that map to an HTTP status code,
// letting controllers translate failures without string matching.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates an id did not resolve to an existing record of
	// the expected kind. List queries never raise it; an empty list is a
	// valid result.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates the caller supplied malformed input, such as
	// an empty name or a parent id that does not resolve to a folder.
	ValidationError struct {
		Message string
	}

	// PersistenceError indicates the backing store could not be reached or
	// returned a fault, possibly partway through a multi-step cascade.
	PersistenceError struct {
		Message string
		Err     error
	}

	// ConflictError indicates a write collided with existing state.
	ConflictError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }
func (e *ConflictError) Error() string   { return e.Message }

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *NotFoundError) StatusCode() int    { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int  { return http.StatusBadRequest }
func (e *PersistenceError) StatusCode() int { return http.StatusBadGateway }
func (e *ConflictError) StatusCode() int    { return http.StatusConflict }

func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewPersistence(err error, format string, args ...interface{}) error {
	return &PersistenceError{Message: fmt.Sprintf(format, args...), Err: err}
}

// IsNotFound reports whether any error in err's chain is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether any error in err's chain is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
