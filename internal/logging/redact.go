// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package logging

import "strings"

// SanitizeToken masks a bearer credential, keeping only the first and last
// four characters. Short tokens are fully masked.
func SanitizeToken(token string) string {
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "[REDACTED]"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeAuthorization masks the credential inside an Authorization header value.
func SanitizeAuthorization(header string) string {
	if header == "" {
		return ""
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found {
		return SanitizeToken(header)
	}
	return scheme + " " + SanitizeToken(rest)
}
