// Package modkit provides module wiring and core deps
package modkit

import (
	"trendscout/internal/platform/config"
	"trendscout/internal/platform/logger"
)

// Deps holds the shared dependencies every module builder receives.
// The zero value is usable: Log discards and Cfg reads unprefixed env
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
}

// Named returns Log tagged with a component field
func (d Deps) Named(component string) *logger.Logger {
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
