package api

import (
	"net/http"
	"time"

	"github.com/sketchflow/sketchflow/pkg/observability"
)

// statusRecorder captures the response status for logging and hooks.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observe emits HTTP hooks and an access log line per request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		dur := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, dur)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", dur)
	})
}
