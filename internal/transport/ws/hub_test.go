package ws

import (
	"encoding/json"
	"testing"
)

func newTestConn(id string) *Connection {
	return &Connection{
		ID:   id,
		Send: make(chan []byte, 16),
	}
}

// drain returns all frames currently queued on a connection.
func drain(c *Connection) [][]byte {
	var frames [][]byte
	for {
		select {
		case data := <-c.Send:
			frames = append(frames, data)
		default:
			return frames
		}
	}
}

func decodeFrame(t *testing.T, data []byte) Message {
	t.Helper()
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Failed to decode frame: %v", err)
	}
	return msg
}

func TestBroadcastExcludesSender(t *testing.T) {
	hub := NewHub()

	sender := newTestConn("sender")
	peer1 := newTestConn("peer-1")
	peer2 := newTestConn("peer-2")
	for _, c := range []*Connection{sender, peer1, peer2} {
		hub.Register(c)
		hub.JoinRoom("ABCDEF", c.ID)
	}

	hub.BroadcastToRoom("ABCDEF", "sender", "content:updated", map[string]string{"content": "x"})

	if got := drain(sender); len(got) != 0 {
		t.Errorf("Sender should not receive its own echo, got %d frames", len(got))
	}
	for _, peer := range []*Connection{peer1, peer2} {
		frames := drain(peer)
		if len(frames) != 1 {
			t.Fatalf("Peer %s: expected 1 frame, got %d", peer.ID, len(frames))
		}
		if msg := decodeFrame(t, frames[0]); msg.Type != "content:updated" {
			t.Errorf("Peer %s: expected content:updated, got %s", peer.ID, msg.Type)
		}
	}
}

func TestBroadcastScopedToRoom(t *testing.T) {
	hub := NewHub()

	inRoom := newTestConn("in-room")
	elsewhere := newTestConn("elsewhere")
	hub.Register(inRoom)
	hub.Register(elsewhere)
	hub.JoinRoom("ABCDEF", inRoom.ID)
	hub.JoinRoom("GHJKLM", elsewhere.ID)

	hub.BroadcastToRoom("ABCDEF", "", "title:updated", map[string]string{"title": "t"})

	if len(drain(inRoom)) != 1 {
		t.Error("Room member should receive the broadcast")
	}
	if len(drain(elsewhere)) != 0 {
		t.Error("Other rooms must not receive the broadcast")
	}
}

func TestSendToConnection(t *testing.T) {
	hub := NewHub()

	conn := newTestConn("conn-1")
	other := newTestConn("conn-2")
	hub.Register(conn)
	hub.Register(other)

	hub.SendToConnection("conn-1", "session:error", map[string]string{"message": "Session not found"})

	frames := drain(conn)
	if len(frames) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(frames))
	}
	msg := decodeFrame(t, frames[0])
	if msg.Type != "session:error" {
		t.Errorf("Expected session:error, got %s", msg.Type)
	}
	var payload map[string]string
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload["message"] != "Session not found" {
		t.Errorf("Unexpected payload: %v", payload)
	}

	if len(drain(other)) != 0 {
		t.Error("Other connections must not receive a direct send")
	}
}

func TestLeaveRoomPrunes(t *testing.T) {
	hub := NewHub()

	conn := newTestConn("conn-1")
	hub.Register(conn)
	hub.JoinRoom("ABCDEF", conn.ID)

	if hub.RoomSize("ABCDEF") != 1 {
		t.Fatal("Expected room size 1")
	}

	hub.LeaveRoom("ABCDEF", conn.ID)
	if hub.RoomSize("ABCDEF") != 0 {
		t.Error("Expected empty room after leave")
	}
	if _, ok := hub.rooms["ABCDEF"]; ok {
		t.Error("Empty room should be pruned")
	}
}

func TestUnregisterRemovesEverywhere(t *testing.T) {
	hub := NewHub()

	conn := newTestConn("conn-1")
	hub.Register(conn)
	hub.JoinRoom("ABCDEF", conn.ID)

	hub.Unregister(conn)

	if hub.RoomSize("ABCDEF") != 0 {
		t.Error("Unregister should remove the connection from its room")
	}
	if _, ok := <-conn.Send; ok {
		t.Error("Unregister should close the send channel")
	}

	// Double unregister must not panic on the closed channel
	hub.Unregister(conn)
}

func TestBroadcastSkipsFullBuffers(t *testing.T) {
	hub := NewHub()

	full := &Connection{ID: "full", Send: make(chan []byte)}
	ok := newTestConn("ok")
	hub.Register(full)
	hub.Register(ok)
	hub.JoinRoom("ABCDEF", full.ID)
	hub.JoinRoom("ABCDEF", ok.ID)

	hub.BroadcastToRoom("ABCDEF", "", "content:updated", map[string]string{"content": "x"})

	if len(drain(ok)) != 1 {
		t.Error("A blocked recipient must not abort delivery to others")
	}
}
