package models

import "errors"

// Taxonomy classes reported to API clients in the code_type field.
const (
	ClassValidation    = "ValidationFailure"
	ClassAuthorization = "AuthorizationFailure"
	ClassNotFound      = "NotFoundFailure"
	ClassConflict      = "ConflictFailure"
	ClassPersistence   = "PersistenceFailure"
)

// ClassifiedError is implemented by every error the handlers know how to
// translate into an HTTP response.
type ClassifiedError interface {
	error
	Class() string
}

type baseError struct {
	Message string
	Err     error
}

func (e baseError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e baseError) Unwrap() error {
	return e.Err
}

type ErrorValidation struct{ baseError }

func (ErrorValidation) Class() string { return ClassValidation }

type ErrorUnauthorized struct{ baseError }

func (ErrorUnauthorized) Class() string { return ClassAuthorization }

type ErrorForbidden struct{ baseError }

func (ErrorForbidden) Class() string { return ClassAuthorization }

type ErrorNotFound struct{ baseError }

func (ErrorNotFound) Class() string { return ClassNotFound }

type ErrorConflict struct{ baseError }

func (ErrorConflict) Class() string { return ClassConflict }

type ErrorInternalServer struct{ baseError }

func (ErrorInternalServer) Class() string { return ClassPersistence }

func NewValidationError(message string, err error) error {
	return ErrorValidation{baseError{Message: message, Err: err}}
}

func NewUnauthorizedError(message string) error {
	return ErrorUnauthorized{baseError{Message: message}}
}

func NewForbiddenError(message string) error {
	return ErrorForbidden{baseError{Message: message}}
}

func NewNotFoundError(message string, err error) error {
	return ErrorNotFound{baseError{Message: message, Err: err}}
}

func NewConflictError(message string) error {
	return ErrorConflict{baseError{Message: message}}
}

func NewPersistenceError(message string, err error) error {
	return ErrorInternalServer{baseError{Message: message, Err: err}}
}

// ClassOf returns the taxonomy class of err, defaulting to PersistenceFailure
// for errors that were never classified.
func ClassOf(err error) string {
	var classified ClassifiedError
	if errors.As(err, &classified) {
		return classified.Class()
	}
	return ClassPersistence
}
