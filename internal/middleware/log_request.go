package middleware

import (
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"

	"impractical.co/brochure"
)

// RequestIDHeader carries the id every log line of a request is tagged with.
// An incoming value is reused, otherwise a new one is generated.
const RequestIDHeader = "X-Request-Id"

// LogRequest logs one line per request once it has been served, and makes a
// logger tagged with the request id available to handlers through
// brochure.Logger.
func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLogger := logger.With("request_id", requestID)
			r = r.WithContext(brochure.LoggingContext(r.Context(), reqLogger))

			metrics := httpsnoop.CaptureMetrics(next, w, r)
			reqLogger.InfoContext(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", metrics.Code,
				"bytes", metrics.Written,
				"duration", metrics.Duration,
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}
