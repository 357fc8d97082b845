package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"trendscout/internal/platform/config"
	"trendscout/internal/platform/net/middleware"
)

// StackOptions tunes the baseline middleware stack
type StackOptions struct {
	CORSOrigins []string      // empty allows any origin
	Slow        time.Duration // access log warns at or above this, 0 disables
	Timeout     time.Duration // request deadline, 0 means 30s
}

// StackFromConfig reads CORE_API_CORS_ORIGINS, CORE_API_SLOW_MS and CORE_API_TIMEOUT
func StackFromConfig(cfg config.Conf) StackOptions {
	c := cfg.Prefix("CORE_API_")
	return StackOptions{
		CORSOrigins: c.MayCSV("CORS_ORIGINS", nil),
		Slow:        time.Duration(c.MayInt("SLOW_MS", 500)) * time.Millisecond,
		Timeout:     c.MayDuration("TIMEOUT", 30*time.Second),
	}
}

// BodyLimit caps request bodies for a module, see modkit.WithMiddlewares
func BodyLimit(n int64) func(http.Handler) http.Handler { return middleware.RequestSize(n) }

// CommonStack returns the baseline stack with defaults
func CommonStack() []func(http.Handler) http.Handler {
	return Stack(StackOptions{Slow: 500 * time.Millisecond})
}

// Stack returns a baseline per module middleware slice
func Stack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// observability, outside recover so panics are logged with their 500
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// cross-origin
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
