// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

/*
Package visit records page visits with a per-path throttle and best-effort delivery.

For each committed navigation the Guard drops no-op transitions, then the
Recorder:

 1. rejects paths under the admin section or starting with a deny-listed probe prefix
 2. atomically checks and stamps the path in the ThrottleCache, skipping paths
    reported less than one throttle window ago
 3. reports the visit in the background through the request pipeline

The caller never waits for delivery. When a report fails its cache entry is
released, so the next navigation to that path reports again immediately. A
Sweeper removes entries older than twice the window on every window tick.

# Concurrency

Recorder calls, report goroutines and the sweeper run in parallel. The
ThrottleCache serializes check-and-insert, release and sweep under one mutex,
so at most one report per path is in flight per window. Release only removes
the entry the failed attempt created; a newer stamp is left alone.
*/
package visit
