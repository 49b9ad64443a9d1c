package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("address")

	assert.Equal(t, "address", err.ParamName)
	assert.Equal(t, "value is required: address", err.Error())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("id")

		assert.Equal(t, "value is invalid: id", err.Error())
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("-1 is not greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("id", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "-1 is not greater than 0")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestObjectNotFoundError(t *testing.T) {
	err := errs.NewObjectNotFoundError("delivery", "123")

	assert.Equal(t, "delivery", err.ObjectName)
	assert.Equal(t, "123", err.ID)
	assert.Equal(t, "object not found: delivery 123", err.Error())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, http.StatusNotFound, err.Code())
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      *errs.StatusError
		code     int
		sentinel error
	}{
		{
			name:     "invalid_assignment",
			err:      errs.NewInvalidAssignmentError("user 1 cannot be a driver"),
			code:     http.StatusBadRequest,
			sentinel: errs.ErrInvalidAssignment,
		},
		{
			name:     "forbidden",
			err:      errs.NewForbiddenError("delivery 1 is not assigned to driver 2"),
			code:     http.StatusForbidden,
			sentinel: errs.ErrForbidden,
		},
		{
			name:     "conflict",
			err:      errs.NewConflictError("delivery 1 is already ended"),
			code:     http.StatusConflict,
			sentinel: errs.ErrConflict,
		},
		{
			name:     "bad_request",
			err:      errs.NewBadRequestError("duplicate end order number 3"),
			code:     http.StatusBadRequest,
			sentinel: errs.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code())
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Contains(t, tt.err.Error(), tt.err.Message())
		})
	}
}

func TestStatusError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving delivery: %w", errs.NewConflictError("delivery 1 is already ended"))

	require.ErrorIs(t, wrapped, errs.ErrConflict)
	assert.Equal(t, http.StatusConflict, errs.CodeOf(wrapped))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not_found", errs.NewObjectNotFoundError("user", "9"), http.StatusNotFound},
		{"forbidden", errs.NewForbiddenError("nope"), http.StatusForbidden},
		{"conflict", errs.NewConflictError("already ended"), http.StatusConflict},
		{"invalid_assignment", errs.NewInvalidAssignmentError("role mismatch"), http.StatusBadRequest},
		{"bad_request", errs.NewBadRequestError("duplicate id"), http.StatusBadRequest},
		{"value_required", errs.NewValueIsRequiredError("address"), http.StatusBadRequest},
		{"value_invalid", errs.NewValueIsInvalidError("id"), http.StatusBadRequest},
		{"unclassified", errors.New("database is down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, errs.CodeOf(tt.err))
		})
	}
}
