package domainerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("driver: bad connection")))
}

func TestIs_MatchesThroughWrapping(t *testing.T) {
	err := New(CodeNotFound, "Warga not found")
	wrapped := fmt.Errorf("service: %w", err)

	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeConflict))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(CodeInternal, "Internal server error", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, Cause(err))
	assert.Equal(t, "Internal server error", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(New(tc.code, "x")), string(tc.code))
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("raw")))
}
