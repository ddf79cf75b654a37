// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package navigation

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// RedirectListener is told the new location after every Redirect.
type RedirectListener func(location string)

// Location is the current navigable location of the browsing context.
// It is safe for concurrent use.
type Location struct {
	mu        sync.RWMutex
	current   url.URL
	listeners []RedirectListener
}

// NewLocation creates a Location positioned at origin.
func NewLocation(origin string) (*Location, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse location: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("location %q must be absolute", origin)
	}
	return &Location{current: *u}, nil
}

// String returns the full current URL.
func (l *Location) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current.String()
}

// Route returns the route held in the fragment, without its query.
// An empty fragment is the root route "/".
func (l *Location) Route() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return routeOf(l.current.Fragment)
}

// IsAt reports whether the current route is any of routes.
func (l *Location) IsAt(routes ...string) bool {
	current := l.Route()
	for _, r := range routes {
		if current == r {
			return true
		}
	}
	return false
}

// SetRoute records a navigation the routing layer already performed.
// fullPath may carry a query ("/search?q=go").
func (l *Location) SetRoute(fullPath string) {
	l.mu.Lock()
	l.current.Fragment = fullPath
	l.current.RawFragment = ""
	l.mu.Unlock()
}

// Redirect moves the browsing context to route by replacing only the
// fragment, then notifies listeners. It returns the new location.
func (l *Location) Redirect(route string) string {
	l.mu.Lock()
	l.current.Fragment = route
	l.current.RawFragment = ""
	target := l.current.String()
	listeners := append([]RedirectListener(nil), l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(target)
	}
	return target
}

// OnRedirect registers a listener called after each Redirect.
func (l *Location) OnRedirect(fn RedirectListener) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

func routeOf(fragment string) string {
	route, _, _ := strings.Cut(fragment, "?")
	if route == "" {
		return "/"
	}
	return route
}
