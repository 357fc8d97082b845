// Package module wires the Open Floor agent into the API using modkit
package module

import (
	"context"

	gh "trendscout/internal/adapters/github"
	"trendscout/internal/core/ratelimit"
	"trendscout/internal/core/scope"
	modkit "trendscout/internal/modkit"
	"trendscout/internal/modkit/httpkit"
	str "trendscout/internal/platform/strings"

	ahttp "trendscout/internal/services/agent/http"
	asvc "trendscout/internal/services/agent/service"
)

// Module implements the agent module
type Module struct {
	b     modkit.Built
	svc   asvc.Service
	ports Ports
}

// Pinger is satisfied by the GitHub client and used by readiness checks
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ports are exposed for cross module wiring
type Ports struct {
	Agent  asvc.Service
	GitHub Pinger
}

// New constructs the agent module. It panics when the manifest cannot be loaded
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("agent"),
		modkit.WithPrefix("/openfloor"),
		// one spare byte so oversized envelopes still get the bind error message
		modkit.WithMiddlewares(httpkit.BodyLimit(ahttp.MaxBytes + 1)),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	manifest, err := LoadManifest(cfg.ManifestPath, cfg.SpeakerURI, cfg.ServiceURL)
	if err != nil {
		panic("agent module: " + err.Error())
	}

	ghc := gh.NewClient(gh.Options{
		BaseURL:       cfg.BaseURL,
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		SearchTimeout: cfg.SearchTimeout,
		TokensCSV:     cfg.TokensCSV,
		Limiter:       ratelimit.New(cfg.MinInterval),
	})

	svc := asvc.New(ghc, scope.New(), asvc.Options{
		Manifest:   manifest,
		MaxResults: cfg.MaxResults,
	})

	deps.Named("agent").Info().
		Str("speaker_uri", manifest.Identification.SpeakerURI).
		Dur("min_interval", cfg.MinInterval).
		Dur("search_timeout", cfg.SearchTimeout).
		Msg("agent module ready")

	return &Module{
		b:     b,
		svc:   svc,
		ports: Ports{Agent: svc, GitHub: ghc},
	}
}

// MountRoutes mounts the protocol endpoint and the manifest under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ahttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "agent") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Ports returns Ports
func (m *Module) Ports() any { return m.ports }
