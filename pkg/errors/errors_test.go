package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("patient", nil), http.StatusNotFound},
		{Validation("invalid status", nil), http.StatusBadRequest},
		{PreconditionFailed("already inactive", "reactivate first"), http.StatusBadRequest},
		{Conflict("slot taken", "pick another"), http.StatusConflict},
		{Unavailable("chat disabled"), http.StatusServiceUnavailable},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestErrorWrapsCause(t *testing.T) {
	cause := errors.New("row not found")
	err := NotFound("patient", cause)

	assert.Equal(t, "patient not found: row not found", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	inner := Conflict("slot taken", "pick another")
	wrapped := fmt.Errorf("creating appointment: %w", inner)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrConflict, appErr.Code)
	assert.Equal(t, "pick another", appErr.Suggestion)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
