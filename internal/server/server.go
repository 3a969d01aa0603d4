// Package server provides the HTTP server for the Drishti coaching
// engine.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/drishti/internal/asana"
	"github.com/ayusman/drishti/internal/server/api"
	"github.com/ayusman/drishti/internal/session"
	"github.com/ayusman/drishti/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Catalog   *asana.Catalog
	Sessions  *session.Manager
}

// Server represents the HTTP server for the Drishti application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Catalog != nil {
		asanaHandler := api.NewAsanaHandler(s.config.Catalog)
		s.mux.Handle("/api/asanas", asanaHandler)
	}

	if s.config.Sessions != nil {
		sessionsHandler := api.NewSessionsHandler(s.config.Sessions, s.config.Store)
		liveHandler := NewLiveHandler(s.config.Sessions)

		// Route live websocket upgrades separately from the REST
		// session endpoints: /api/sessions/{id}/live
		sessionRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/live") {
				liveHandler.ServeHTTP(w, r)
				return
			}
			sessionsHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/sessions", sessionRouter)
		s.mux.Handle("/api/sessions/", sessionRouter)
	}

	// Serve static files if a directory is configured
	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth returns server health information.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.start).Seconds(),
	}
	if s.config.Sessions != nil {
		health["sessions"] = len(s.config.Sessions.List())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
