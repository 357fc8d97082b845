// Package module mounts the meta endpoints and feeds them the readiness probes
package module

import (
	"context"
	"time"

	"trendscout/internal/core/version"
	modkit "trendscout/internal/modkit"
	"trendscout/internal/modkit/httpkit"
	str "trendscout/internal/platform/strings"

	metahttp "trendscout/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	ports     Ports
	startedAt time.Time
}

// Ports declares the injected dependencies probed by /meta/ready
type Ports struct {
	GitHub metahttp.Pinger
}

// New constructs a meta module. Inject Ports with modkit.WithPorts to enable readiness checks
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{b: b, startedAt: time.Now()}
	if p, ok := b.Ports.(Ports); ok {
		m.ports = p
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Checks:      []metahttp.Check{{Name: "github", Ping: pingOf(m.ports.GitHub)}},
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }

// pingOf keeps a missing port nil so the ready check reports skipped
func pingOf(p metahttp.Pinger) func(context.Context) error {
	if p == nil {
		return nil
	}
	return p.Ping
}
