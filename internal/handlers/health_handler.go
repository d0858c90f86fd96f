// File: internal/handlers/health_handler.go
package handlers

import (
	"net/http"
	"time"
)

// HealthHandler reports liveness and a few counters.
type HealthHandler struct {
	started        time.Time
	catalogEntries func() int
	sessions       func() int
}

func NewHealthHandler(catalogEntries, sessions func() int) *HealthHandler {
	return &HealthHandler{started: time.Now(), catalogEntries: catalogEntries, sessions: sessions}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"uptime_seconds":  int64(time.Since(h.started).Seconds()),
		"catalog_entries": h.catalogEntries(),
		"active_sessions": h.sessions(),
	})
}
