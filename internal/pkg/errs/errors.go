package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors enable classification with errors.Is regardless of the
// concrete error type that carries the details.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrBadRequest        = errors.New("bad request")
)

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func (e *ValueIsRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value,
// attaching the underlying cause for diagnostics.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates that a referenced object does not exist.
// It maps to HTTP 404 when surfaced through the API.
type ObjectNotFoundError struct {
	ObjectName string
	ID         string
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(objectName string, id string) *ObjectNotFoundError {
	return &ObjectNotFoundError{ObjectName: objectName, ID: id}
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ObjectName, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// Code returns the HTTP status code for the error.
func (e *ObjectNotFoundError) Code() int {
	return http.StatusNotFound
}

// StatusError is a status-coded application failure surfaced by the
// lifecycle use cases. The code follows HTTP semantics so transport
// adapters can map it directly.
type StatusError struct {
	code     int
	message  string
	sentinel error
}

func newStatusError(code int, message string, sentinel error) *StatusError {
	return &StatusError{code: code, message: message, sentinel: sentinel}
}

// NewInvalidAssignmentError creates a 400 error for a role mismatch between
// a delivery's participants.
func NewInvalidAssignmentError(message string) *StatusError {
	return newStatusError(http.StatusBadRequest, message, ErrInvalidAssignment)
}

// NewForbiddenError creates a 403 error for an actor that is not allowed to
// mutate the delivery.
func NewForbiddenError(message string) *StatusError {
	return newStatusError(http.StatusForbidden, message, ErrForbidden)
}

// NewConflictError creates a 409 error for an operation that clashes with the
// delivery's current state.
func NewConflictError(message string) *StatusError {
	return newStatusError(http.StatusConflict, message, ErrConflict)
}

// NewBadRequestError creates a 400 error for a malformed batch request.
func NewBadRequestError(message string) *StatusError {
	return newStatusError(http.StatusBadRequest, message, ErrBadRequest)
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.sentinel, e.message)
}

func (e *StatusError) Unwrap() error {
	return e.sentinel
}

// Code returns the HTTP status code for the error.
func (e *StatusError) Code() int {
	return e.code
}

// Message returns the human-readable description of the failure.
func (e *StatusError) Message() string {
	return e.message
}

// CodeOf extracts the HTTP status code from an application error.
// Unclassified errors map to 500.
func CodeOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code()
	}

	var notFoundErr *ObjectNotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr.Code()
	}

	if errors.Is(err, ErrValueIsRequired) || errors.Is(err, ErrValueIsInvalid) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
