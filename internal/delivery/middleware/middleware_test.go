package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"usersvc/config"
	deliverycontext "usersvc/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_PropagatesHeader(t *testing.T) {
	e := echo.New()
	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenInCtx string
	err := mw.Process(func(c echo.Context) error {
		seenInCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)

	assert.Equal(t, "client-id", seenInCtx)
	assert.Equal(t, "client-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesOversizedHeader(t *testing.T) {
	e := echo.New()
	mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, strings.Repeat("x", 500))
	rec := httptest.NewRecorder()

	require.NoError(t, mw.Process(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(e.NewContext(req, rec)))

	got := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), maxRequestIDLength)
}

func TestLoggerMiddleware_DebugOnly(t *testing.T) {
	for _, debug := range []bool{false, true} {
		var buf bytes.Buffer
		cfg := &config.Config{}
		cfg.Env.Debug = debug
		mw := NewLoggerMiddleware(slog.New(slog.NewTextHandler(&buf, nil)), cfg)

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

		require.NoError(t, mw.Handle(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})(c))

		if debug {
			assert.Contains(t, buf.String(), "HTTP Request")
			assert.Contains(t, buf.String(), "status=200")
		} else {
			assert.Zero(t, buf.Len())
		}
	}
}
