package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"paircode/internal/model"
	"paircode/internal/service"

	"github.com/gorilla/mux"
)

// SessionHandler handles session endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	presence   *service.PresenceTracker
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, presence *service.PresenceTracker) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
		presence:   presence,
	}
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Language string `json:"language"`
	Title    string `json:"title"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Create handles POST /sessions
// @Summary Create a session
// @Accept json
// @Produce json
// @Param body body CreateSessionRequest true "session options"
// @Success 201 {object} model.SessionView
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	// An empty body means all defaults; anything else must parse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var creator *model.Creator
	if req.Username != "" && req.Email != "" {
		creator = &model.Creator{Username: req.Username, Email: req.Email}
	}

	session, err := h.sessionSvc.Create(r.Context(), req.Language, req.Title, creator)
	if err != nil {
		log.Printf("Create session error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, h.view(session))
}

// Get handles GET /sessions/{code}
// @Summary Get a session by code
// @Produce json
// @Param code path string true "session code"
// @Success 200 {object} model.SessionView
// @Failure 404 {object} map[string]string
// @Router /sessions/{code} [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	session, err := h.sessionSvc.Get(r.Context(), code)
	if err != nil {
		h.writeLookupError(w, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(session))
}

// List handles GET /sessions
// @Summary List all sessions
// @Produce json
// @Success 200 {array} model.SessionView
// @Router /sessions [get]
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSvc.List(r.Context())
	if err != nil {
		log.Printf("List sessions error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	views := make([]*model.SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, h.view(s))
	}

	writeJSON(w, http.StatusOK, views)
}

// UpdateContentRequest is the request body for a content update
type UpdateContentRequest struct {
	Content string `json:"content"`
}

// UpdateContent handles PATCH /sessions/{code}/content
// @Summary Overwrite session content
// @Accept json
// @Produce json
// @Param code path string true "session code"
// @Param body body UpdateContentRequest true "new content"
// @Success 200 {object} model.SessionView
// @Failure 404 {object} map[string]string
// @Router /sessions/{code}/content [patch]
func (h *SessionHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.UpdateContent(r.Context(), code, req.Content)
	if err != nil {
		h.writeLookupError(w, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(session))
}

// UpdateLanguageRequest is the request body for a language update
type UpdateLanguageRequest struct {
	Language string `json:"language"`
}

// UpdateLanguage handles PATCH /sessions/{code}/language
// @Summary Overwrite session language
// @Accept json
// @Produce json
// @Param code path string true "session code"
// @Param body body UpdateLanguageRequest true "new language"
// @Success 200 {object} model.SessionView
// @Failure 404 {object} map[string]string
// @Router /sessions/{code}/language [patch]
func (h *SessionHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req UpdateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.UpdateLanguage(r.Context(), code, req.Language)
	if err != nil {
		h.writeLookupError(w, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(session))
}

// UpdateTitleRequest is the request body for a title update
type UpdateTitleRequest struct {
	Title string `json:"title"`
}

// UpdateTitle handles PATCH /sessions/{code}/title
// @Summary Overwrite session title
// @Accept json
// @Produce json
// @Param code path string true "session code"
// @Param body body UpdateTitleRequest true "new title"
// @Success 200 {object} model.SessionView
// @Failure 404 {object} map[string]string
// @Router /sessions/{code}/title [patch]
func (h *SessionHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.UpdateTitle(r.Context(), code, req.Title)
	if err != nil {
		h.writeLookupError(w, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(session))
}

// Delete handles DELETE /sessions/{code}
// @Summary Delete a session
// @Param code path string true "session code"
// @Success 204
// @Router /sessions/{code} [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	// Idempotent: deleting an unknown code is still a 204
	if _, err := h.sessionSvc.Delete(r.Context(), code); err != nil {
		log.Printf("Delete session error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JoinRequest is the request body for joining a session as a candidate
type JoinRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Join handles POST /sessions/{code}/join
// @Summary Register a candidate on a session
// @Accept json
// @Produce json
// @Param code path string true "session code"
// @Param body body JoinRequest true "candidate"
// @Success 200 {object} model.SessionView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{code}/join [post]
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	session, err := h.sessionSvc.RegisterCandidate(r.Context(), code, req.Name, req.Email)
	if err != nil {
		h.writeLookupError(w, code, err)
		return
	}

	writeJSON(w, http.StatusOK, h.view(session))
}

// Health handles GET /health
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// view attaches the live presence snapshot to a session record.
func (h *SessionHandler) view(s *model.Session) *model.SessionView {
	return model.NewSessionView(s, h.presence.Snapshot(s.Code))
}

func (h *SessionHandler) writeLookupError(w http.ResponseWriter, code string, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	log.Printf("Session %s lookup error: %v", code, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
