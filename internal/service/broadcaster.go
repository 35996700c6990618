package service

// Broadcaster is the room-addressing primitive the gateway fans out through
// (implemented by the ws hub; the interface lives here to avoid an import
// cycle with the transport layer). Delivery is best-effort: a gone recipient
// never aborts delivery to the rest of the room.
type Broadcaster interface {
	// JoinRoom registers a connection in a session code's room.
	JoinRoom(code, connectionID string)
	// LeaveRoom removes a connection from a session code's room.
	LeaveRoom(code, connectionID string)
	// BroadcastToRoom sends an event to every connection in the room except
	// excludeID (pass "" to exclude nobody).
	BroadcastToRoom(code, excludeID, event string, payload interface{})
	// SendToConnection sends an event to exactly one connection.
	SendToConnection(connectionID, event string, payload interface{})
}
