// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package services

import "context"

// Closer is satisfied by *visit.Recorder.
type Closer interface {
	Close()
}

// RecorderService holds the visit recorder open while the tree runs and
// drains in-flight reports on shutdown.
type RecorderService struct {
	recorder Closer
	name     string
}

// NewRecorderService wraps recorder.
func NewRecorderService(recorder Closer) *RecorderService {
	return &RecorderService{recorder: recorder, name: "visit-recorder"}
}

// Serve blocks until ctx is done, then closes the recorder. A closed
// recorder stays closed, so suture must not restart this service.
func (s *RecorderService) Serve(ctx context.Context) error {
	<-ctx.Done()
	s.recorder.Close()
	return ctx.Err()
}

func (s *RecorderService) String() string {
	return s.name
}
