package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-workflow/internal/capability"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewValidationError("bad input", nil)
	mapped := ToDomainError(original)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainErrorUnsupportedCapability(t *testing.T) {
	err := fmt.Errorf("%w: state does not implement %q", capability.ErrUnsupported, "unknown")
	mapped := ToDomainError(err)
	require.NotNil(t, mapped)
	assert.Equal(t, "UNSUPPORTED_CAPABILITY", mapped.Code)
	assert.Equal(t, http.StatusNotImplemented, mapped.HTTPStatus)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewInternalError(inner)
	assert.ErrorIs(t, err, inner)
}
