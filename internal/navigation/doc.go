// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

// Package navigation models the browsing context: the route transitions the
// routing layer reports and the current location the pipeline redirects.
//
// The application uses hash routing, so a route lives in the URL fragment:
//
//	http://localhost:5173/blog/#/categories?page=2
//
// has route "/categories". Redirects replace only the fragment and keep the
// origin and path prefix.
package navigation
