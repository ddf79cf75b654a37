// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package supervisor runs the agent's long-lived components under a suture
supervisor tree.

	sblog-agent (root)
	├── telemetry-layer   visit recorder drain, throttle-cache sweeper
	├── messaging-layer   websocket hub
	└── api-layer         agent HTTP server

A crash in one layer restarts only that layer's services, with suture's
failure threshold and backoff. Supervisor events are logged through
sutureslog and the zerolog-backed slog adapter.
*/
package supervisor
