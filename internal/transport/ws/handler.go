package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"paircode/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // code buffers can be large
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler upgrades HTTP requests and pipes protocol events into the gateway.
type Handler struct {
	hub     *Hub
	gateway *service.SyncGateway
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, gateway *service.SyncGateway) *Handler {
	return &Handler{
		hub:     hub,
		gateway: gateway,
	}
}

// HandleWS handles GET /ws. The connection starts outside any session;
// membership is driven entirely by session:join events.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
	}
	h.hub.Register(conn)
	log.Printf("Client connected: %s", conn.ID)

	go h.writePump(wsConn, conn)
	h.readPump(r.Context(), wsConn, conn)
}

func (h *Handler) readPump(ctx context.Context, wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.gateway.HandleDisconnect(conn.ID)
		h.hub.Unregister(conn)
		wsConn.Close()
		log.Printf("Client disconnected: %s", conn.ID)
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case service.EventSessionJoin:
			var p JoinPayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				h.gateway.HandleJoin(ctx, conn.ID, p.SessionCode, p.DisplayName)
			}
		case service.EventContentUpdate:
			var p ContentUpdatePayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				h.gateway.HandleContentUpdate(ctx, conn.ID, p.SessionCode, p.Content)
			}
		case service.EventLanguageUpdate:
			var p LanguageUpdatePayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				h.gateway.HandleLanguageUpdate(ctx, conn.ID, p.SessionCode, p.Language)
			}
		case service.EventTitleUpdate:
			var p TitleUpdatePayload
			if json.Unmarshal(msg.Payload, &p) == nil {
				h.gateway.HandleTitleUpdate(ctx, conn.ID, p.SessionCode, p.Title)
			}
		default:
			// ignore
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
