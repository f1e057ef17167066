// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars on top.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of concurrent scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DefaultLimit is the rank result size when the caller omits one.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the caller-supplied rank limit.
	MaxLimit int `koanf:"max_limit"`

	// TargetEngagement is the engagement rate treated as fully met.
	TargetEngagement float64 `koanf:"target_engagement"`

	// PriorityBoostCap bounds the additive priority-directive bonus.
	PriorityBoostCap float64 `koanf:"priority_boost_cap"`

	// ReasonCap limits how many reasons a result carries.
	ReasonCap int `koanf:"reason_cap"`

	// Weights maps scoring module names to their weight share.
	Weights map[string]float64 `koanf:"weights"`

	// PostgresDSN enables the Postgres match store when non-empty;
	// otherwise matches live in memory only.
	PostgresDSN string `koanf:"postgres_dsn"`

	// CatalogPath optionally points at a YAML niche catalog overriding
	// the built-in one.
	CatalogPath string `koanf:"catalog_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		WorkerCount:      runtime.NumCPU() * 2,
		DefaultLimit:     12,
		MaxLimit:         100,
		TargetEngagement: 0.04,
		PriorityBoostCap: 0.05,
		ReasonCap:        3,
		Weights: map[string]float64{
			"niche":      0.45,
			"topics":     0.35,
			"platform":   0.10,
			"engagement": 0.10,
		},
	}
}
