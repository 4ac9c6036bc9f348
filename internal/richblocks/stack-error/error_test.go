package stack_error

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackErrorStack(t *testing.T) {
	te := TrackErrorStack(io.EOF).AddContext("session", "s1")
	te = TrackErrorStack(te).AddContext("session", "s2")

	assert.Len(t, te.ErrStack, 2)
	assert.Equal(t, "s1", te.Context["session"])
	assert.True(t, errors.Is(te, io.EOF))
	assert.Equal(t, io.EOF.Error(), te.Error())
	assert.Contains(t, te.ErrStack[0].Value.String(), "error_test.go")
}

func TestLogError(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest("POST", "/api/sessions/x/keys", nil), httptest.NewRecorder())
	require.NotPanics(t, func() {
		LogError(c, TrackErrorStack(io.EOF))
		LogError(nil, io.ErrUnexpectedEOF)
	})
}
