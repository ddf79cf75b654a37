// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"sync"
	"time"
)

// DefaultWindow is the per-path throttle window.
const DefaultWindow = 5 * time.Second

type stamp struct {
	at  time.Time
	seq uint64
}

// Ticket identifies the cache entry created by one reporting attempt.
type Ticket struct {
	Path string
	At   time.Time
	seq  uint64
}

// ThrottleCache maps a route path to the instant it was last reported.
type ThrottleCache struct {
	mu      sync.Mutex
	entries map[string]stamp
	window  time.Duration
	seq     uint64
}

// NewThrottleCache creates an empty cache. A non-positive window uses DefaultWindow.
func NewThrottleCache(window time.Duration) *ThrottleCache {
	if window <= 0 {
		window = DefaultWindow
	}
	return &ThrottleCache{
		entries: make(map[string]stamp),
		window:  window,
	}
}

// Window returns the throttle window.
func (c *ThrottleCache) Window() time.Duration {
	return c.window
}

// TryAcquire stamps path with now unless it was stamped less than one window
// before now. The check and the insert are atomic.
func (c *ThrottleCache) TryAcquire(path string, now time.Time) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[path]; ok && now.Sub(prev.at) < c.window {
		return Ticket{}, false
	}

	c.seq++
	c.entries[path] = stamp{at: now, seq: c.seq}
	return Ticket{Path: path, At: now, seq: c.seq}, true
}

// Release removes the entry created by t. It returns false when the entry
// has since been replaced or swept.
func (c *ThrottleCache) Release(t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.entries[t.Path]
	if !ok || current.seq != t.seq {
		return false
	}
	delete(c.entries, t.Path)
	return true
}

// Sweep removes entries older than twice the window and returns how many
// were removed and how many remain.
func (c *ThrottleCache) Sweep(now time.Time) (evicted, remaining int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	maxAge := 2 * c.window
	for path, s := range c.entries {
		if now.Sub(s.at) > maxAge {
			delete(c.entries, path)
			evicted++
		}
	}
	return evicted, len(c.entries)
}

// LastReported returns the stamp recorded for path.
func (c *ThrottleCache) LastReported(path string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[path]
	return s.at, ok
}

// Len returns the number of cached paths.
func (c *ThrottleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
