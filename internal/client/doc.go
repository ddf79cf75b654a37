// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package client is the authenticated request pipeline: the single path every
outbound call to the blog backend takes.

# Request Phase

An http.RoundTripper reads the credential from the session store on every
request and sets "Authorization: Bearer <token>" when one is present. Requests
without a credential pass through unmodified. Request construction errors are
returned to the caller unchanged.

# Response Phase

2xx bodies are decoded straight into the caller's output value, so callers see
the backend payload and never the HTTP wrapper. Failures become *Error values
classified through a flat table:

	400 -> KindValidation   server message, else "Invalid request parameters"
	401 -> KindAuthExpired  "Unauthorized, please log in again"
	403 -> KindForbidden    server message, else "Access denied"
	404 -> KindNotFound     server message, else "Requested resource not found"
	500 -> KindServer       server message, else "Server error"
	other status            server message, else "Request failed (<status>)"
	deadline elapsed        KindTimeout  "Request timed out"
	no response             KindNetwork  "Network connection failed"

Every failed call produces exactly one Notification, suppressed while the
location is on the login route. Caller cancellation is returned but never
notified.

# Session Expiry

A 401 clears the stored credential and, unless the location is already on
the login or register route, redirects the location to the login route.
Expiry handling is serialized, so concurrent 401s produce one redirect and
one notification.
*/
package client
