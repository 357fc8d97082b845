package module

import (
	"time"

	"trendscout/internal/core/ratelimit"
	"trendscout/internal/platform/config"
)

// Options controls agent identity, search pacing and GitHub client settings
type Options struct {
	// identity overrides applied on top of the manifest
	SpeakerURI   string
	ServiceURL   string
	ManifestPath string // empty means the embedded manifest

	MinInterval   time.Duration // spacing between searches
	SearchTimeout time.Duration // deadline of one search call
	MaxResults    int

	// GitHub client
	TokensCSV string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// FromConfig reads AGENT_* and GITHUB_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	ac := cfg.Prefix("AGENT_")
	gc := cfg.Prefix("GITHUB_")
	return Options{
		SpeakerURI:    ac.MayString("SPEAKER_URI", ""),
		ServiceURL:    ac.MayString("SERVICE_URL", ""),
		ManifestPath:  ac.MayString("MANIFEST_PATH", ""),
		MinInterval:   ac.MayDuration("SEARCH_MIN_INTERVAL", ratelimit.DefaultMinInterval),
		SearchTimeout: ac.MayDuration("SEARCH_TIMEOUT", 10*time.Second),
		MaxResults:    ac.MayInt("SEARCH_MAX_RESULTS", 5),
		TokensCSV:     gc.MayString("TOKENS", ""),
		BaseURL:       gc.MayString("BASE_URL", ""),
		UserAgent:     gc.MayString("USER_AGENT", "trendscout-agent"),
		Timeout:       gc.MayDuration("TIMEOUT", 15*time.Second),
	}
}
