// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package api exposes the agent's local HTTP surface using the chi router.

The routing layer of a frontend (or a test harness) drives the agent
through it: committed navigations are posted to /api/v1/navigation and go
through the visit guard, and session operations under /api/v1/session
run through the authenticated request pipeline.

Routes:

	POST /api/v1/navigation              report a committed transition
	GET  /api/v1/session                 session state and location
	POST /api/v1/session/login           log in, store the credential
	POST /api/v1/session/logout          log out, clear the credential
	POST /api/v1/session/register        create an account
	GET  /api/v1/session/user            current user from the backend
	GET  /api/v1/session/check-username  username availability
	GET  /api/v1/health                  liveness and component state
	GET  /ws                             notification and redirect push
	GET  /metrics                        Prometheus exposition

Every response except /ws and /metrics uses the APIResponse envelope.
Pipeline failures are mapped to agent statuses by kind, and the pipeline
has already notified the user by the time a handler sees the error.
*/
package api
