// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/sblog-agent/internal/client"
)

// startHub runs a hub until the test ends.
func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("hub did not stop")
		}
	})
	return hub
}

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, buffer)}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestHub_NotifyBroadcastsToAllClients(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	a, b := newTestClient(hub, 4), newTestClient(hub, 4)
	hub.Register <- a
	hub.Register <- b

	hub.Notify(context.Background(), client.Notification{
		Kind:    client.KindForbidden,
		Status:  403,
		Message: "You do not have permission to perform this operation",
	})

	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		if msg.Type != MessageTypeNotification {
			t.Errorf("type = %q, want notification", msg.Type)
		}
		n, ok := msg.Data.(client.Notification)
		if !ok || n.Kind != client.KindForbidden {
			t.Errorf("data = %#v", msg.Data)
		}
	}
}

func TestHub_BroadcastRedirect(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	c := newTestClient(hub, 4)
	hub.Register <- c

	hub.BroadcastRedirect("http://localhost:5173/#/login")

	msg := receive(t, c)
	data, ok := msg.Data.(RedirectData)
	if msg.Type != MessageTypeRedirect || !ok || data.Location != "http://localhost:5173/#/login" {
		t.Errorf("message = %#v", msg)
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	c := newTestClient(hub, 1)
	hub.Register <- c
	hub.Unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("ClientCount() = %d, want 0", n)
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	slow := newTestClient(hub, 0)
	fast := newTestClient(hub, 4)
	hub.Register <- slow
	hub.Register <- fast

	hub.BroadcastRedirect("/#/login")
	receive(t, fast)

	// The slow client was removed during the broadcast above.
	hub.BroadcastRedirect("/#/login")
	receive(t, fast)
	if n := hub.ClientCount(); n != 1 {
		t.Errorf("ClientCount() = %d, want 1", n)
	}
}

func TestHub_NotifyDoesNotBlockWhenQueueFull(t *testing.T) {
	t.Parallel()

	hub := NewHub() // not running

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer+10; i++ {
			hub.Notify(context.Background(), client.Notification{Kind: client.KindNetwork})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	c := newTestClient(hub, 1)
	hub.Register <- c

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("RunWithContext() = %v, want deadline exceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	if _, ok := <-c.send; ok {
		t.Error("client should be closed at shutdown")
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"pong","data":null}` {
		t.Errorf("MarshalMessage() = %s", data)
	}
}
