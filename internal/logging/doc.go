// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

// Package logging provides centralized zerolog-based structured logging for the agent.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("path", "/categories").Msg("Visit reported")
//	logging.Error().Err(err).Int("status", 500).Msg("Request failed")
//
//	// Component loggers
//	log := logging.WithComponent("visit")
//	log.Debug().Msg("Throttled")
//
//	// Context-aware logging (request_id / correlation_id)
//	logging.Ctx(ctx).Info().Msg("Processing navigation")
//
// # Configuration
//
// Environment Variables (mapped by internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - true, false (default: false)
//
// # Credentials
//
// Bearer tokens must never reach log output. Use SanitizeToken when a
// credential has to be referenced at all:
//
//	logging.Debug().Str("token", logging.SanitizeToken(tok)).Msg("Credential stored")
//
// # slog Adapter
//
// NewSlogLogger bridges zerolog to slog for sutureslog, which reports
// supervisor events through an *slog.Logger.
//
// # Testing
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logging.SetLogger(logger)
package logging
