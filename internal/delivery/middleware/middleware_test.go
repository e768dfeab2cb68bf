package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricecompare/config"
	deliverycontext "pricecompare/internal/delivery/context"
)

func newTestEcho(buf *bytes.Buffer, debug bool) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	return e
}

func TestRequestIDMiddleware(t *testing.T) {
	e := newTestEcho(&bytes.Buffer{}, false)
	e.GET("/ping", func(c echo.Context) error {
		assert.Equal(t, deliverycontext.GetRequestID(c), deliverycontext.GetRequestIDFromContext(c.Request().Context()))
		assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

		return c.NoContent(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "propagates client id", header: "client-123", expected: "client-123"},
		{name: "generates when missing", header: ""},
		{name: "replaces id with spaces", header: "bad id"},
		{name: "replaces oversized id", header: strings.Repeat("a", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			got := rec.Header().Get(deliverycontext.HeaderXRequestID)
			require.NotEmpty(t, got)
			if tt.expected != "" {
				assert.Equal(t, tt.expected, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}

func TestLoggerMiddleware_LogsFailuresOnly(t *testing.T) {
	buf := &bytes.Buffer{}
	e := newTestEcho(buf, false)
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "nope") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, buf.String())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=404")
}

func TestLoggerMiddleware_RedactsVerificationToken(t *testing.T) {
	buf := &bytes.Buffer{}
	e := newTestEcho(buf, true)
	e.POST("/verify_account", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/verify_account?verification_token=s3cr3t&lang=en", nil))

	assert.NotContains(t, buf.String(), "s3cr3t")
	assert.Contains(t, buf.String(), redactedValue)
}

func TestRedactQuery(t *testing.T) {
	query := url.Values{"verification_token": {"abc"}, "page": {"2"}}
	assert.Equal(t, "page=2&verification_token=REDACTED", redactQuery(query))
}
