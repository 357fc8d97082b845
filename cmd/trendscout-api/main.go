// @title         Trendscout API
// @version       0.1.0
// @description   Open Floor agent that reports GitHub adoption and activity trends for a technology

package main

import (
	"context"
	"os/signal"
	"syscall"

	"trendscout/internal/core/version"
	"trendscout/internal/platform/config"
	"trendscout/internal/platform/logger"
	phttp "trendscout/internal/platform/net/http"

	"trendscout/internal/services/api"
)

func main() {
	root := config.New()
	// CORE_API_PORT, CORE_API_SWAGGER, CORE_API_PROFILER
	coreCfg := root.Prefix("CORE_")
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()
	l.Info().Interface("build", version.Info()).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := phttp.NewServer(coreCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
