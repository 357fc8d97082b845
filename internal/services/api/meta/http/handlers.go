// Package http serves the meta endpoints: liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"trendscout/internal/core/version"
	"trendscout/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// Pinger is satisfied by adapters that can probe their upstream
type Pinger interface {
	Ping(context.Context) error
}

// Check is one named readiness probe. A nil Ping reports skipped
type Check struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
}

// ReadyTimeout bounds the whole readiness probe
var ReadyTimeout = 3 * time.Second

const (
	statusOK       = "ok"
	statusFail     = "fail"
	statusSkipped  = "skipped"
	statusDegraded = "degraded"
)

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"trendscout-api"`
	Started string `json:"started"  example:"2026-10-01T09:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T09:05:00Z"`
}

// ReadyCheck is the outcome of one probe
type ReadyCheck struct {
	Name    string `json:"name"   example:"github"`
	Status  string `json:"status" example:"ok"`
	Error   string `json:"error,omitempty" example:"github search: 503 Service Unavailable"`
	Elapsed int64  `json:"elapsed_ms" example:"120"`
}

// ReadyResponse summarizes readiness. Status is ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T09:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"trendscout-api"`
	Started string `json:"started" example:"2026-10-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(time.Now()),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	out := make([]ReadyCheck, len(h.deps.Checks))
	var g errgroup.Group
	for i, c := range h.deps.Checks {
		g.Go(func() error {
			out[i] = probe(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	res := ReadyResponse{Status: overall(out), Checks: out, Now: stamp(time.Now())}
	if res.Status == statusFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: res}, nil
	}
	return res, nil
}

func probe(ctx context.Context, c Check) ReadyCheck {
	if c.Ping == nil {
		return ReadyCheck{Name: c.Name, Status: statusSkipped}
	}
	start := time.Now()
	err := c.Ping(ctx)
	rc := ReadyCheck{Name: c.Name, Status: statusOK, Elapsed: time.Since(start).Milliseconds()}
	if err != nil {
		rc.Status, rc.Error = statusFail, err.Error()
	}
	return rc
}

// overall is fail if any check failed, degraded if any was skipped, ok otherwise
func overall(checks []ReadyCheck) string {
	s := statusOK
	for _, c := range checks {
		switch c.Status {
		case statusFail:
			return statusFail
		case statusSkipped:
			s = statusDegraded
		}
	}
	return s
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}
