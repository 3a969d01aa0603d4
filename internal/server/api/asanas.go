// Package api provides HTTP API handlers for the Drishti coaching
// engine.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/drishti/internal/asana"
)

// AsanaHandler handles HTTP requests for the pose catalog.
type AsanaHandler struct {
	catalog *asana.Catalog
}

// NewAsanaHandler creates a new AsanaHandler for the given catalog.
func NewAsanaHandler(c *asana.Catalog) *AsanaHandler {
	return &AsanaHandler{catalog: c}
}

type listAsanasResponse struct {
	Asanas []asana.Info `json:"asanas"`
}

// ServeHTTP implements the http.Handler interface.
func (h *AsanaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, listAsanasResponse{Asanas: h.catalog.List()})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
