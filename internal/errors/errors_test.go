package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("invalid input")

	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "invalid input")
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("category not found")

	assert.Equal(t, TypeNotFound, err.Type)
	assert.Equal(t, "category not found", err.Message)
	assert.Nil(t, err.Cause)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())
	assert.Contains(t, err.Error(), "not_found")
}

func TestConflictError(t *testing.T) {
	err := ConflictError("active session already exists")

	assert.Equal(t, TypeConflict, err.Type)
	assert.Equal(t, http.StatusConflict, err.HTTPStatus())
	assert.Contains(t, err.Error(), "conflict")
	assert.Contains(t, err.Error(), "active session already exists")
}

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("database connection failed")
	err := InternalError("failed to save session", cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Contains(t, err.Error(), "database connection failed")
}

func TestInternalErrorWithoutCause(t *testing.T) {
	err := InternalError("something went wrong", nil)

	assert.Nil(t, err.Cause)
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestExternalError(t *testing.T) {
	cause := fmt.Errorf("redis timeout")
	err := ExternalError("cache unavailable", cause)

	assert.Equal(t, TypeExternal, err.Type)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := InternalError("wrapper", cause)

	assert.True(t, errors.Is(err, cause))
}

func TestWithField(t *testing.T) {
	err := ValidationError("bad window").
		WithField("user_id", int64(42)).
		WithField("app_name", "Chrome")

	assert.Equal(t, int64(42), err.Context["user_id"])
	assert.Equal(t, "Chrome", err.Context["app_name"])
}

func TestToResponse_HidesCause(t *testing.T) {
	err := InternalError("boom", fmt.Errorf("secret detail")).WithField("k", "v")
	resp := err.ToResponse()

	assert.Equal(t, "internal", resp.Error)
	assert.Equal(t, "boom", resp.Message)
	assert.Equal(t, "v", resp.Details["k"])
	assert.NotContains(t, resp.Message, "secret detail")
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	original := ConflictError("duplicate")
	got := AsStructuredError(fmt.Errorf("wrapped: %w", original))

	require.Equal(t, original, got)
}

func TestAsStructuredError_UnknownBecomesInternal(t *testing.T) {
	got := AsStructuredError(fmt.Errorf("plain failure"))

	assert.Equal(t, TypeInternal, got.Type)
	assert.NotNil(t, got.Cause)
}
