package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader is the HTTP header carrying the request trace id.
const traceIDHeader = "X-Trace-ID"

// withTraceID assigns a trace id to every request. An incoming X-Trace-ID
// header is reused so a caller can correlate its own logs; otherwise a new
// uuid is generated. The id is echoed in the response header and attached
// to a request-scoped child logger stored in the context.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		child := h.logger.GetChildLogger()
		child.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)

		ctx := child.WithContext(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
