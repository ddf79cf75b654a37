// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/sblog-agent/internal/client"
)

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHandler_DeliversNotification(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, nil))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, nil)
	waitForClients(t, hub, 1)

	hub.Notify(context.Background(), client.Notification{Kind: client.KindTimeout, Message: "Request timed out, please try again later"})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg struct {
		Type string              `json:"type"`
		Data client.Notification `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Type != MessageTypeNotification || msg.Data.Kind != client.KindTimeout {
		t.Errorf("received %+v", msg)
	}
}

func TestHandler_PingPong(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, nil))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, nil)
	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Type != MessageTypePong {
		t.Errorf("type = %q, want pong", msg.Type)
	}
}

func TestHandler_DisconnectUnregisters(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, nil))
	t.Cleanup(srv.Close)

	conn := dial(t, srv, nil)
	waitForClients(t, hub, 1)

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	waitForClients(t, hub, 0)
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no list", nil, "http://evil.example", true},
		{"wildcard", []string{"*"}, "http://evil.example", true},
		{"no origin header", []string{"http://localhost:5173"}, "", true},
		{"allowed", []string{"http://localhost:5173"}, "http://localhost:5173", true},
		{"path ignored", []string{"http://localhost:5173"}, "http://localhost:5173/", true},
		{"other host", []string{"http://localhost:5173"}, "http://evil.example", false},
		{"other scheme", []string{"http://localhost:5173"}, "https://localhost:5173", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(r); got != tt.want {
				t.Errorf("originChecker(%v)(%q) = %v, want %v", tt.allowed, tt.origin, got, tt.want)
			}
		})
	}
}
