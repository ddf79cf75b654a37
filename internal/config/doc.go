// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package config provides layered configuration for the SBlog agent.

Configuration is assembled with koanf from built-in defaults, an optional YAML
file and environment variables, in that order of priority. Load validates the
result before returning it.

# Configuration Structure

  - APIConfig: backend base URL, request timeout, user agent
  - SessionConfig: credential store backend (memory or badger)
  - NavigationConfig: application origin and the login/register routes
  - VisitConfig: throttle window, eligibility filter, report rate limit and breaker
  - ServerConfig: local agent HTTP listener, CORS and rate limiting
  - LoggingConfig: zerolog level, format and caller info

# Environment Variables

Only variables listed in the mapping table are read. Slice fields
(VISIT_DENY_PREFIXES, CORS_ORIGINS) accept comma-separated values:

	API_BASE_URL=https://blog.example.com/api
	VISIT_THROTTLE_WINDOW=5s
	VISIT_DENY_PREFIXES=/tracker,/metrics
*/
package config
