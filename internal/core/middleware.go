package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"raincast/internal/types"
)

// responseCapture wraps an http.ResponseWriter to capture the status code
// written by downstream handlers, for logging middleware that needs to
// observe the response status after the handler chain completes.
type responseCapture struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader captures the status code and delegates to the wrapped writer.
func (rc *responseCapture) WriteHeader(code int) {
	if !rc.written {
		rc.statusCode = code
		rc.written = true
	}
	rc.ResponseWriter.WriteHeader(code)
}

// Write ensures the status code is captured even when WriteHeader is not
// called explicitly (the default is 200 per the net/http spec).
func (rc *responseCapture) Write(b []byte) (int, error) {
	if !rc.written {
		rc.statusCode = http.StatusOK
		rc.written = true
	}
	return rc.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter, enabling
// http.ResponseController and other standard library helpers.
func (rc *responseCapture) Unwrap() http.ResponseWriter {
	return rc.ResponseWriter
}

// Recoverer catches panics in the handler chain, logs the stack trace
// internally, and writes a standardized 500 APIErrorResponse to the client.
// This middleware MUST be the outermost handler in the chain.
func (s *Server) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				s.Logger.Error("panic recovered",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprintf("%v", rvr)),
					slog.String("stack", string(debug.Stack())),
				)

				requestID := types.GetRequestID(r.Context())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				// Formatted manually: in a panic recovery context we must not
				// risk another panic from json.Marshal.
				body := fmt.Sprintf(
					`{"error":{"code":"%s","message":"an unexpected error occurred","request_id":"%s"}}`,
					types.ErrCodeInternalUnexpected, escapeJSON(requestID),
				)
				_, _ = w.Write([]byte(body))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// escapeJSON performs minimal JSON string escaping for strings we control.
func escapeJSON(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// RequestIDMiddleware generates or propagates a unique request ID for
// correlation across logs and upstream calls. If the incoming request carries
// an X-Request-Id header, that value is reused; otherwise a new UUID is
// generated. The ID is stored in the context via types.WithRequestID and set
// as the X-Request-Id response header for client correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := types.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs request metadata (method, path, status, duration) at a
// level derived from the response status. Header values named in
// redactedHeaders (case-insensitive) are masked in log output.
func RequestLogger(logger *slog.Logger, redactedHeaders []string) func(http.Handler) http.Handler {
	redactSet := make(map[string]struct{}, len(redactedHeaders))
	for _, h := range redactedHeaders {
		redactSet[strings.ToLower(h)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rc := &responseCapture{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rc, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rc.statusCode),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			}

			if reqID := types.GetRequestID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}

			headerAttrs := []slog.Attr{}
			for name, values := range r.Header {
				if _, redact := redactSet[strings.ToLower(name)]; redact {
					headerAttrs = append(headerAttrs, slog.String(name, "[REDACTED]"))
				} else {
					headerAttrs = append(headerAttrs, slog.String(name, strings.Join(values, ", ")))
				}
			}
			if len(headerAttrs) > 0 {
				attrs = append(attrs, slog.Group("headers", attrsToAny(headerAttrs)...))
			}

			args := attrsToAny(attrs)
			switch {
			case rc.statusCode >= 500:
				logger.Error("request completed", args...)
			case rc.statusCode >= 400:
				logger.Warn("request completed", args...)
			default:
				logger.Info("request completed", args...)
			}
		})
	}
}

// attrsToAny converts a slice of slog.Attr to []any for use with slog methods.
func attrsToAny(attrs []slog.Attr) []any {
	result := make([]any, len(attrs))
	for i, a := range attrs {
		result[i] = a
	}
	return result
}

// SecurityHeadersMiddleware sets standard security response headers on all
// responses. It executes early in the chain so the headers are present
// regardless of downstream processing or errors.
func (s *Server) SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// ContextTimeoutMiddleware sets a deadline on the request context so slow
// upstream calls cannot hold a request open indefinitely. Downstream handlers
// receive a cancelled context when the deadline passes.
func ContextTimeoutMiddleware(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
