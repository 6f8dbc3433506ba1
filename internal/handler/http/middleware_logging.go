package http

import (
	"net/http"
	"time"

	"github.com/keepsake-dev/keepsake/internal/logger"
)

// withLogging logs every request after it completes: uri, method, status,
// duration and response size.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(wrapped, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", wrapped.status).
			Dur("duration", time.Since(start)).
			Int("size", wrapped.size).
			Msg("request handled")
	})
}
