package middleware

import (
	"net/http"

	"github.com/frahmantamala/family-ledger/pkg/logger"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
)

const TraceHeader = "X-Trace-ID"

// RequestID tags the request with a trace id, reusing the caller's when sent,
// and attaches it to the context logger. Runs after chi's RequestID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = logger.With(ctx, "request_id", reqID)
		}

		w.Header().Set(TraceHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
