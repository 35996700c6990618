package rest

import (
	"net/http"
	"os"

	"paircode/internal/service"
	"paircode/internal/transport/rest/handler"
	"paircode/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	SessionService *service.SessionService
	Presence       *service.PresenceTracker
	WSHub          *ws.Hub
	Gateway        *service.SyncGateway
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.SessionService, c.Presence)
	wsHandler := ws.NewHandler(c.WSHub, c.Gateway)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	r.HandleFunc("/health", sessionHandler.Health).Methods("GET")

	// WebSocket entry point; session membership is negotiated in-protocol
	r.HandleFunc("/ws", wsHandler.HandleWS).Methods("GET")

	r.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions", sessionHandler.List).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/{code}", sessionHandler.Get).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/{code}", sessionHandler.Delete).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/sessions/{code}/join", sessionHandler.Join).Methods("POST", "OPTIONS")
	r.HandleFunc("/sessions/{code}/content", sessionHandler.UpdateContent).Methods("PATCH", "OPTIONS")
	r.HandleFunc("/sessions/{code}/language", sessionHandler.UpdateLanguage).Methods("PATCH", "OPTIONS")
	r.HandleFunc("/sessions/{code}/title", sessionHandler.UpdateTitle).Methods("PATCH", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
