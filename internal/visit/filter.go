// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package visit

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotEligible is wrapped by every filter rejection.
var ErrNotEligible = errors.New("path not eligible for visit recording")

// Filter decides which destination paths are reportable.
type Filter struct {
	adminPrefix  string
	denyPrefixes []string
}

// NewFilter creates a filter. adminPrefix may be empty to disable the admin rule.
func NewFilter(adminPrefix string, denyPrefixes []string) *Filter {
	deny := make([]string, 0, len(denyPrefixes))
	for _, p := range denyPrefixes {
		if p = strings.TrimSpace(p); p != "" {
			deny = append(deny, p)
		}
	}
	return &Filter{
		adminPrefix:  strings.TrimSuffix(adminPrefix, "/"),
		denyPrefixes: deny,
	}
}

// Check returns nil for reportable paths. Rules apply in order: admin
// section first, then the deny-list.
func (f *Filter) Check(path string) error {
	if f.underAdmin(path) {
		return fmt.Errorf("%w: %s is in the admin section", ErrNotEligible, path)
	}
	for _, prefix := range f.denyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return fmt.Errorf("%w: %s matches deny prefix %s", ErrNotEligible, path, prefix)
		}
	}
	return nil
}

// underAdmin matches the admin prefix on a segment boundary, so /admin and
// /admin/articles match but /administrators does not.
func (f *Filter) underAdmin(path string) bool {
	if f.adminPrefix == "" {
		return false
	}
	rest, ok := strings.CutPrefix(path, f.adminPrefix)
	return ok && (rest == "" || rest[0] == '/' || rest[0] == '?')
}
