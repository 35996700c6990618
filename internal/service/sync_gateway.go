package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"paircode/internal/model"
)

// Protocol event names, shared by the gateway and the ws transport.
const (
	// Inbound
	EventSessionJoin    = "session:join"
	EventContentUpdate  = "content:update"
	EventLanguageUpdate = "language:update"
	EventTitleUpdate    = "title:update"

	// Outbound
	EventSessionJoined     = "session:joined"
	EventSessionError      = "session:error"
	EventContentUpdated    = "content:updated"
	EventLanguageUpdated   = "language:updated"
	EventTitleUpdated      = "title:updated"
	EventParticipantJoined = "participant:joined"
	EventParticipantLeft   = "participant:left"
)

// ErrorPayload is the body of a session:error event.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ContentUpdatedPayload carries the sender id so receivers can distinguish
// their own echo.
type ContentUpdatedPayload struct {
	Content  string `json:"content"`
	SenderID string `json:"senderId"`
}

// LanguageUpdatedPayload is the body of a language:updated event.
type LanguageUpdatedPayload struct {
	Language string `json:"language"`
}

// TitleUpdatedPayload is the body of a title:updated event.
type TitleUpdatedPayload struct {
	Title string `json:"title"`
}

// SyncGateway runs the per-connection protocol state machine: it joins
// connections to sessions, fans mutation events out to the rest of the room,
// and cleans up presence on disconnect. A connection is in at most one
// session at a time; joining a new one leaves the old one first.
type SyncGateway struct {
	sessionSvc  *SessionService
	presence    *PresenceTracker
	broadcaster Broadcaster

	mu      sync.Mutex
	current map[string]string // connectionID -> joined session code
}

// NewSyncGateway creates a new sync gateway.
func NewSyncGateway(sessionSvc *SessionService, presence *PresenceTracker, broadcaster Broadcaster) *SyncGateway {
	return &SyncGateway{
		sessionSvc:  sessionSvc,
		presence:    presence,
		broadcaster: broadcaster,
		current:     make(map[string]string),
	}
}

// HandleJoin processes a session:join event. On an unknown code the joiner
// gets a single session:error and nothing else changes; an existing join is
// not disturbed by a failed attempt.
func (g *SyncGateway) HandleJoin(ctx context.Context, connectionID, code, displayName string) {
	if displayName == "" {
		displayName = "Anonymous"
	}

	session, err := g.sessionSvc.Get(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Printf("Join lookup failed for session %s: %v", code, err)
		}
		g.broadcaster.SendToConnection(connectionID, EventSessionError, ErrorPayload{Message: "Session not found"})
		return
	}

	// Leave the previous session, if any
	if oldCode, ok := g.currentCode(connectionID); ok {
		g.leave(oldCode, connectionID)
	}

	g.broadcaster.JoinRoom(code, connectionID)
	g.presence.Join(code, connectionID, displayName)
	g.setCurrent(connectionID, code)
	snap := g.presence.Snapshot(code)

	// Full session payload to the joiner, presence delta to everyone else
	g.broadcaster.SendToConnection(connectionID, EventSessionJoined, model.NewSessionView(session, snap))
	g.broadcaster.BroadcastToRoom(code, connectionID, EventParticipantJoined, snap)

	log.Printf("Connection %s joined session %s as %q (%d present)", connectionID, code, displayName, snap.Count)
}

// HandleContentUpdate persists new buffer content, then echoes it to every
// other connection in the room. Unknown codes are dropped silently.
func (g *SyncGateway) HandleContentUpdate(ctx context.Context, connectionID, code, content string) {
	if _, err := g.sessionSvc.UpdateContent(ctx, code, content); err != nil {
		g.logUpdateFailure(code, err)
		return
	}
	g.broadcaster.BroadcastToRoom(code, connectionID, EventContentUpdated, ContentUpdatedPayload{
		Content:  content,
		SenderID: connectionID,
	})
}

// HandleLanguageUpdate persists a language change, then broadcasts it to the
// rest of the room. Unknown codes are dropped silently.
func (g *SyncGateway) HandleLanguageUpdate(ctx context.Context, connectionID, code, language string) {
	if _, err := g.sessionSvc.UpdateLanguage(ctx, code, language); err != nil {
		g.logUpdateFailure(code, err)
		return
	}
	g.broadcaster.BroadcastToRoom(code, connectionID, EventLanguageUpdated, LanguageUpdatedPayload{Language: language})
}

// HandleTitleUpdate persists a title change, then broadcasts it to the rest
// of the room. Unknown codes are dropped silently.
func (g *SyncGateway) HandleTitleUpdate(ctx context.Context, connectionID, code, title string) {
	if _, err := g.sessionSvc.UpdateTitle(ctx, code, title); err != nil {
		g.logUpdateFailure(code, err)
		return
	}
	g.broadcaster.BroadcastToRoom(code, connectionID, EventTitleUpdated, TitleUpdatedPayload{Title: title})
}

// HandleDisconnect tears down the connection's session membership, if any.
func (g *SyncGateway) HandleDisconnect(connectionID string) {
	code, ok := g.currentCode(connectionID)
	if !ok {
		return
	}
	g.leave(code, connectionID)

	g.mu.Lock()
	delete(g.current, connectionID)
	g.mu.Unlock()

	log.Printf("Connection %s disconnected from session %s", connectionID, code)
}

// leave removes the connection from room and presence, then notifies the
// remaining participants.
func (g *SyncGateway) leave(code, connectionID string) {
	g.broadcaster.LeaveRoom(code, connectionID)
	g.presence.Leave(code, connectionID)
	snap := g.presence.Snapshot(code)
	g.broadcaster.BroadcastToRoom(code, "", EventParticipantLeft, snap)
}

func (g *SyncGateway) logUpdateFailure(code string, err error) {
	// A NotFound here is an accepted silent no-op; only real storage
	// failures are worth a log line.
	if !errors.Is(err, ErrSessionNotFound) {
		log.Printf("Update failed for session %s: %v", code, err)
	}
}

func (g *SyncGateway) currentCode(connectionID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	code, ok := g.current[connectionID]
	return code, ok
}

func (g *SyncGateway) setCurrent(connectionID, code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[connectionID] = code
}
