package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Connection represents one live WebSocket connection. Outbound frames are
// queued on Send and drained by the connection's write pump.
type Connection struct {
	ID   string
	Send chan []byte
}

// Hub maps session codes to the connections currently joined to them and
// implements service.Broadcaster. It knows nothing about the protocol, only
// about addressing: rooms, single connections, and an optional excluded
// sender.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Connection            // connectionID -> connection
	rooms map[string]map[string]*Connection // session code -> connectionID -> connection
}

// NewHub creates a new hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Connection),
		rooms: make(map[string]map[string]*Connection),
	}
}

// Register adds a connection to the hub's connection table. The connection
// is not in any room until JoinRoom.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID] = conn
}

// Unregister removes a connection entirely and closes its send channel.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.conns[conn.ID]; !ok || existing != conn {
		return
	}
	delete(h.conns, conn.ID)
	for code, room := range h.rooms {
		if _, ok := room[conn.ID]; ok {
			delete(room, conn.ID)
			if len(room) == 0 {
				delete(h.rooms, code)
			}
		}
	}
	close(conn.Send)
}

// JoinRoom places a registered connection into a session code's room.
func (h *Hub) JoinRoom(code, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connectionID]
	if !ok {
		return
	}
	room, ok := h.rooms[code]
	if !ok {
		room = make(map[string]*Connection)
		h.rooms[code] = room
	}
	room[connectionID] = conn
}

// LeaveRoom removes a connection from a room, pruning the room when empty.
func (h *Hub) LeaveRoom(code, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[code]; ok {
		delete(room, connectionID)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

// BroadcastToRoom sends an event to every connection in the room except
// excludeID. Connections with a full send buffer are skipped.
func (h *Hub) BroadcastToRoom(code, excludeID, event string, payload interface{}) {
	data, err := marshalMessage(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, conn := range h.rooms[code] {
		if id == excludeID {
			continue
		}
		select {
		case conn.Send <- data:
		default:
			// Drop message if buffer full
		}
	}
}

// SendToConnection sends an event to exactly one connection.
func (h *Hub) SendToConnection(connectionID, event string, payload interface{}) {
	data, err := marshalMessage(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if conn, ok := h.conns[connectionID]; ok {
		select {
		case conn.Send <- data:
		default:
		}
	}
}

// RoomSize reports how many connections are joined to a code.
func (h *Hub) RoomSize(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

func marshalMessage(event string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: event, Payload: raw})
}
