// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Command sblog-agent runs the blog client agent.

It owns the user's session against the blog backend: every outbound call
goes through the authenticated request pipeline, which attaches the bearer
credential and turns failures into user notifications. Navigations posted
by the frontend's router are recorded as throttled page visits.

Configuration is read from defaults, then a YAML file (CONFIG_PATH,
./config.yaml or /etc/sblog-agent/config.yaml), then environment
variables such as API_BASE_URL, SESSION_STORE and VISIT_THROTTLE_WINDOW.

Usage:

	API_BASE_URL=https://blog.example.com/api \
	NAVIGATION_ORIGIN=https://blog.example.com/ \
	sblog-agent
*/
package main
