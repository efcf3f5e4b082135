package chats

import (
	"encoding/json"
	"testing"
	"time"

	"globetrotter/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		TripID: "t1",
	}

	hub.register <- client

	msg := models.Message{MessageID: "m1", TripID: "t1", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.Broadcast("t1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), TripID: "t1"}
	b := &Client{Send: make(chan []byte, 10), TripID: "t2"}
	hub.register <- a
	hub.register <- b

	hub.Broadcast("t1", []byte("only t1"))

	select {
	case got := <-a.Send:
		if string(got) != "only t1" {
			t.Fatalf("unexpected payload: %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("room t2 should not receive t1 traffic, got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
