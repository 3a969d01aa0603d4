package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/drishti/internal/session"
	"github.com/ayusman/drishti/internal/store"
)

// SessionsHandler handles HTTP requests for coaching sessions.
type SessionsHandler struct {
	sessions *session.Manager
	store    *store.Store
}

// NewSessionsHandler creates a new SessionsHandler. The store may be
// nil, in which case feedback history is unavailable.
func NewSessionsHandler(m *session.Manager, st *store.Store) *SessionsHandler {
	return &SessionsHandler{sessions: m, store: st}
}

type sessionResponse struct {
	ID string `json:"id"`
}

type setAsanaRequest struct {
	Asana string `json:"asana"`
}

type setAsanaResponse struct {
	OK    bool   `json:"ok"`
	Asana string `json:"asana,omitempty"`
}

type feedbackEventResponse struct {
	Frame     int     `json:"frame"`
	Timestamp float64 `json:"timestamp"`
	ErrorCode string  `json:"error_code"`
	Severity  float64 `json:"severity"`
}

// ServeHTTP implements the http.Handler interface and routes requests
// to the appropriate methods.
//
// Routes:
//
//	POST   /api/sessions               create a session
//	GET    /api/sessions/{id}/stats    session statistics
//	GET    /api/sessions/{id}/feedback persisted feedback events
//	POST   /api/sessions/{id}/asana    select the coached pose
//	POST   /api/sessions/{id}/reset    reset engine state
//	DELETE /api/sessions/{id}          close the session
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodPost:
			h.create(w, r)
		case http.MethodGet:
			h.list(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, action, _ := strings.Cut(path, "/")

	switch action {
	case "":
		switch r.Method {
		case http.MethodDelete:
			h.close(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	case "asana":
		h.setAsana(w, r, id)
	case "stats":
		h.stats(w, r, id)
	case "feedback":
		h.feedback(w, r, id)
	case "reset":
		h.reset(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "unknown session endpoint")
	}
}

func (h *SessionsHandler) create(w http.ResponseWriter, _ *http.Request) {
	s, err := h.sessions.Create()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{ID: s.ID})
}

func (h *SessionsHandler) list(w http.ResponseWriter, _ *http.Request) {
	ids := h.sessions.List()
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (h *SessionsHandler) close(w http.ResponseWriter, _ *http.Request, id string) {
	if !h.sessions.Close(id) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionsHandler) setAsana(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req setAsanaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Asana == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !s.SetAsana(req.Asana) {
		writeJSON(w, http.StatusUnprocessableEntity, setAsanaResponse{OK: false})
		return
	}
	writeJSON(w, http.StatusOK, setAsanaResponse{OK: true, Asana: req.Asana})
}

func (h *SessionsHandler) stats(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, s.Stats())
}

func (h *SessionsHandler) feedback(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.store == nil {
		writeError(w, http.StatusNotImplemented, "no store configured")
		return
	}

	events, err := h.store.Feedback().ListBySession(id, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}

	resp := make([]feedbackEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, feedbackEventResponse{
			Frame:     e.Frame,
			Timestamp: e.Timestamp,
			ErrorCode: e.ErrorCode,
			Severity:  e.Severity,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedback": resp})
}

func (h *SessionsHandler) reset(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.Reset()
	w.WriteHeader(http.StatusNoContent)
}
