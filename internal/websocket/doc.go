// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package websocket pushes user-visible events to connected frontends.

The Hub implements client.Notifier, so every notification raised by the
request pipeline is broadcast as a "notification" message. It also
broadcasts a "redirect" message whenever the session's location is sent
to the login route, which lets a browser tab follow the agent's
navigation.

	┌──────────┐
	│   Hub    │ ← notifications, redirects
	└────┬─────┘
	     │
	┌────┴─────┬─────────┐
	│ Client1  │ Client2 │ ...
	└──────────┴─────────┘

Each client runs a readPump (answers "ping" with "pong") and a writePump
(JSON messages plus keepalive pings).

Delivery is best effort. A client whose send buffer is full is dropped,
and a full broadcast queue drops the message with a warning. Notify never
blocks the caller.

Usage:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)
	router.Get("/ws", websocket.Handler(hub, allowedOrigins))
*/
package websocket
