// Package api provides the HTTP API for the application
package api

import (
	"trendscout/internal/platform/config"
	"trendscout/internal/platform/logger"
	phttp "trendscout/internal/platform/net/http"

	"trendscout/internal/modkit"
	"trendscout/internal/modkit/httpkit"
	"trendscout/internal/modkit/module"
	"trendscout/internal/modkit/swaggerkit"

	agentmod "trendscout/internal/services/agent/module"
	metamod "trendscout/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
//
//	POST /openfloor           conversation envelopes
//	GET  /openfloor/manifest  capability manifest
//	GET  /api/v1/meta/*       health, readiness, version
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	stack := httpkit.Stack(httpkit.StackFromConfig(opt.Config))

	// agent first so its GitHub client can back the readiness probe
	agent := agentmod.New(deps)
	gh := module.MustPortsOf[agentmod.Ports](agent).GitHub

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{GitHub: gh}))

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// the protocol endpoint lives at the root, outside /api/v1
	r.Group(func(g httpkit.Router) {
		g.Use(stack...)
		agent.MountRoutes(g)
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		meta.MountRoutes(api)
	})
}
