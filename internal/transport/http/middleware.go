package http

import (
	"log/slog"
	"net/http"
	"time"
)

// actorHeader carries the authenticated principal id injected by the
// upstream gateway. Authentication itself lives outside this service.
const actorHeader = "X-User-ID"

func actorID(r *http.Request) string {
	return r.Header.Get(actorHeader)
}

// RequestLogger logs method, path, status and latency for every request.
func RequestLogger(next http.Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
