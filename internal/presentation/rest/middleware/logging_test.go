package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	otelinfra "venmo-relay/internal/infrastructure/observability/otel"
)

func readLogEntries(t *testing.T, buf *bytes.Buffer) []otelinfra.LogEntry {
	t.Helper()
	var entries []otelinfra.LogEntry
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry otelinfra.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggingMiddleware_SuccessfulRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := otelinfra.NewLoggerWithWriter(noop.NewTracerProvider().Tracer("test"), &buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	rec.Header().Set(echo.HeaderXRequestID, "req-1")
	c := e.NewContext(req, rec)

	middleware := LoggingMiddleware(logger)
	handler := middleware(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err := handler(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	entries := readLogEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "HTTP request started", entries[0].Message)
	assert.Equal(t, "test-agent", entries[0].Fields["user_agent"])
	assert.Equal(t, "req-1", entries[0].Fields["request_id"])
	assert.Equal(t, "HTTP request completed", entries[1].Message)
	assert.Equal(t, float64(http.StatusOK), entries[1].Fields["status_code"])
	assert.Equal(t, "/health", entries[1].Fields["path"])
}

func TestLoggingMiddleware_FailedRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := otelinfra.NewLoggerWithWriter(noop.NewTracerProvider().Tracer("test"), &buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/capture-authorization", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	middleware := LoggingMiddleware(logger)
	testErr := errors.New("test error")
	handler := middleware(func(c echo.Context) error {
		return testErr
	})

	err := handler(c)
	assert.Equal(t, testErr, err)

	entries := readLogEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, string(otelinfra.LogLevelError), entries[1].Level)
	assert.Equal(t, "HTTP request failed", entries[1].Message)
	assert.Equal(t, "test error", entries[1].Fields["error"])
}

func TestLoggingMiddleware_DifferentStatusCodes(t *testing.T) {
	statusCodes := []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError}

	for _, statusCode := range statusCodes {
		t.Run(http.StatusText(statusCode), func(t *testing.T) {
			var buf bytes.Buffer
			logger := otelinfra.NewLoggerWithWriter(noop.NewTracerProvider().Tracer("test"), &buf)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/authorize-payment", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			middleware := LoggingMiddleware(logger)
			handler := middleware(func(c echo.Context) error {
				return c.JSON(statusCode, map[string]string{"status": "x"})
			})

			require.NoError(t, handler(c))

			entries := readLogEntries(t, &buf)
			require.Len(t, entries, 2)
			assert.Equal(t, float64(statusCode), entries[1].Fields["status_code"])
		})
	}
}
