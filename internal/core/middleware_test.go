package core

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raincast/internal/config"
	"raincast/internal/types"
)

func newTestServer(t *testing.T, logger *slog.Logger) *Server {
	t.Helper()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	}
	s, err := NewServer(&config.Config{}, logger)
	require.NoError(t, err)
	return s
}

func TestRecovererWritesJSON500(t *testing.T) {
	var logBuf bytes.Buffer
	s := newTestServer(t, slog.New(slog.NewJSONHandler(&logBuf, nil)))

	handler := s.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r = r.WithContext(types.WithRequestID(r.Context(), "req_abc123"))

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(types.ErrCodeInternalUnexpected), resp.Error.Code)
	assert.Equal(t, "req_abc123", resp.Error.RequestID)

	// The panic value and stack are logged, never surfaced to the client.
	assert.Contains(t, logBuf.String(), "boom")
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRecovererPassesThroughNormally(t *testing.T) {
	s := newTestServer(t, nil)

	handler := s.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
}

func TestRequestIDMiddlewarePropagatesIncomingID(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "client-supplied-id")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "client-supplied-id", seen)
	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-Id"))
}

func TestRequestLoggerRedactsHeaders(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

	handler := RequestLogger(logger, []string{"Authorization"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodGet, "/predict/rain", nil)
	r.Header.Set("Authorization", "Bearer super-secret")
	r.Header.Set("Accept", "application/json")

	handler.ServeHTTP(httptest.NewRecorder(), r)

	logged := logBuf.String()
	assert.Contains(t, logged, "/predict/rain")
	assert.Contains(t, logged, "[REDACTED]")
	assert.NotContains(t, logged, "super-secret")
	assert.Contains(t, logged, "application/json")
}

func TestRequestLoggerLevelTracksStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "success logs info", status: http.StatusOK, wantLevel: `"level":"INFO"`},
		{name: "client error logs warn", status: http.StatusBadRequest, wantLevel: `"level":"WARN"`},
		{name: "server error logs error", status: http.StatusBadGateway, wantLevel: `"level":"ERROR"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

			handler := RequestLogger(logger, nil)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
				}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Contains(t, logBuf.String(), tc.wantLevel)
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	s := newTestServer(t, nil)

	handler := s.SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestContextTimeoutMiddlewareSetsDeadline(t *testing.T) {
	handler := ContextTimeoutMiddleware(defaultRequestTimeout)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := r.Context().Deadline()
			assert.True(t, ok, "request context should carry a deadline")
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
