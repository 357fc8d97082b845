// Package middleware holds adapters and in house middlewares
package middleware

import (
	"net/http"
	"time"

	"trendscout/internal/platform/logger"
	pnet "trendscout/internal/platform/net"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at warn once they take at least this long, 0 disables it
	Slow time.Duration
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// AccessLogZerolog writes one line per request. The request id is seeded into the
// context first so handler logs carry request_id too
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			r = r.WithContext(logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), ""))

			start := time.Now()
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			log := logger.C(r.Context())
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
