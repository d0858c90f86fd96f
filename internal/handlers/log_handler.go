// File: internal/handlers/log_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pillai-nz/go-pillai/internal/middleware"
)

const maxLogBodyBytes = 8 << 10

// FrontendLogPayload defines the structure for logs coming from the browser.
type FrontendLogPayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Context any    `json:"context,omitempty"`
}

type LogHandler struct {
	logger middleware.Logger
}

func NewLogHandler(logger middleware.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// LogFrontendEvent handles POST /api/log.
func (h *LogHandler) LogFrontendEvent(w http.ResponseWriter, r *http.Request) {
	var payload FrontendLogPayload
	r.Body = http.MaxBytesReader(w, r.Body, maxLogBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	sessionID, _ := middleware.SessionIDFromContext(r.Context())
	keysAndValues := []interface{}{"client_message", payload.Message, "context", payload.Context, "session_id", sessionID}
	switch strings.ToLower(payload.Level) {
	case "error":
		h.logger.Error("CLIENT_LOG", keysAndValues...)
	case "warn", "warning":
		h.logger.Warn("CLIENT_LOG", keysAndValues...)
	case "debug":
		h.logger.Debug("CLIENT_LOG", keysAndValues...)
	default:
		h.logger.Info("CLIENT_LOG", keysAndValues...)
	}

	w.WriteHeader(http.StatusNoContent)
}
