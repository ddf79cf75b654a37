// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package config

import "time"

// Config holds all agent configuration.
type Config struct {
	API        APIConfig        `koanf:"api"`
	Session    SessionConfig    `koanf:"session"`
	Navigation NavigationConfig `koanf:"navigation"`
	Visit      VisitConfig      `koanf:"visit"`
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// APIConfig configures the authenticated request pipeline.
type APIConfig struct {
	// BaseURL is the blog backend API root every request path is joined to.
	// Default: http://localhost:8080/api
	BaseURL string `koanf:"base_url"`

	// Timeout is the per-request deadline. Exceeding it classifies the call
	// as a timeout rather than a network failure.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// UserAgent is sent on every outbound request.
	UserAgent string `koanf:"user_agent"`
}

// SessionConfig configures where the bearer credential lives.
type SessionConfig struct {
	// Store selects the credential backend: memory or badger.
	// Default: memory
	Store string `koanf:"store"`

	// Path is the BadgerDB directory (badger store only).
	Path string `koanf:"path"`
}

// NavigationConfig describes the browsing context the agent mirrors.
type NavigationConfig struct {
	// Origin is the application's entry URL (scheme, host and path prefix).
	// Routes live in the URL fragment, e.g. http://localhost:5173/#/categories.
	Origin string `koanf:"origin"`

	// LoginRoute is the fragment route the pipeline redirects to on 401.
	// Default: /login
	LoginRoute string `koanf:"login_route"`

	// RegisterRoute is the registration route; no expiry redirect happens from it.
	// Default: /register
	RegisterRoute string `koanf:"register_route"`
}

// VisitConfig configures the throttled visit recorder.
type VisitConfig struct {
	// Enabled turns visit reporting on or off.
	Enabled bool `koanf:"enabled"`

	// Endpoint is the visit-logging path relative to APIConfig.BaseURL.
	// Default: /admin/visit-log/record
	Endpoint string `koanf:"endpoint"`

	// ThrottleWindow suppresses repeat reports for the same path.
	// The sweeper runs at this interval and evicts entries older than twice the window.
	// Default: 5s
	ThrottleWindow time.Duration `koanf:"throttle_window"`

	// AdminPrefix marks the management section, which is never reported.
	// Default: /admin
	AdminPrefix string `koanf:"admin_prefix"`

	// DenyPrefixes lists probe paths (extension callbacks, tracker and metrics
	// probes) that are never reported.
	DenyPrefixes []string `koanf:"deny_prefixes"`

	// ReportsPerSecond caps outbound report calls across all paths (0 = unlimited).
	ReportsPerSecond float64 `koanf:"reports_per_second"`

	// ReportBurst is the token bucket size for ReportsPerSecond.
	ReportBurst int `koanf:"report_burst"`

	// BreakerFailures is the number of consecutive delivery failures that
	// opens the report circuit breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// ServerConfig configures the local agent HTTP surface.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// DefaultDenyPrefixes are probe paths observed hitting the router that are
// not real page views.
var DefaultDenyPrefixes = []string{
	"/chrome-extension",
	"/moz-extension",
	"/extension",
	"/tracker",
	"/analytics",
	"/metrics",
	"/stats",
}
