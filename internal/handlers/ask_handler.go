// File: internal/handlers/ask_handler.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/pillai-nz/go-pillai/internal/middleware"
	"github.com/pillai-nz/go-pillai/internal/services/assistant"
	"github.com/pillai-nz/go-pillai/internal/services/translate"
	"github.com/pillai-nz/go-pillai/internal/session"
)

const (
	maxAskBodyBytes = 16 << 10
	historyLimit    = 20
)

// Asker answers one question within a session.
type Asker interface {
	Ask(ctx context.Context, s *domain.Session, req assistant.AskRequest) (*assistant.AskResponse, error)
}

// HistoryReader lists a session's recent questions.
type HistoryReader interface {
	FindBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.Interaction, error)
}

type AskHandler struct {
	assistant Asker
	sessions  *session.Store
	history   HistoryReader
	markdown  goldmark.Markdown
	logger    middleware.Logger
}

func NewAskHandler(asker Asker, sessions *session.Store, history HistoryReader, logger middleware.Logger) (*AskHandler, error) {
	if asker == nil {
		return nil, errors.New("assistant service is required")
	}
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	return &AskHandler{
		assistant: asker,
		sessions:  sessions,
		history:   history,
		// raw HTML in answers is dropped, goldmark's default
		markdown: goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		logger:   logger,
	}, nil
}

type askRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
	Simplify bool   `json:"simplify"`
}

type askResponse struct {
	*assistant.AskResponse
	AnswerHTML template.HTML `json:"answer_html"`
}

// Ask handles POST /api/ask.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeError(w, "Session missing, please reload the page", http.StatusUnauthorized)
		return
	}

	var req askRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxAskBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var resp *assistant.AskResponse
	err := h.sessions.With(sessionID, func(s *domain.Session) error {
		var askErr error
		resp, askErr = h.assistant.Ask(r.Context(), s, assistant.AskRequest{
			Question: req.Question,
			Language: req.Language,
			Simplify: req.Simplify,
		})
		return askErr
	})
	if err != nil {
		status, message := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("Ask failed", "session_id", sessionID, "status", status, "error", err)
		}
		writeJSON(w, status, map[string]string{"error": message, "type": errorType(err)})
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		AskResponse: resp,
		AnswerHTML:  h.renderMarkdown(resp.Answer),
	})
}

// Languages handles GET /api/languages.
func (h *AskHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, translate.Supported())
}

// History handles GET /api/history: the caller's recent questions, newest first.
func (h *AskHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeError(w, "Session missing, please reload the page", http.StatusUnauthorized)
		return
	}
	if h.history == nil {
		writeJSON(w, http.StatusOK, []domain.Interaction{})
		return
	}

	items, err := h.history.FindBySessionID(r.Context(), sessionID, historyLimit)
	if err != nil {
		h.logger.Error("History lookup failed", "session_id", sessionID, "error", err)
		writeError(w, "Could not retrieve history", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.Interaction{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *AskHandler) renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(text), &buf); err != nil {
		h.logger.Warn("Markdown rendering failed, sending escaped text", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(buf.String())
}

// errorStatus maps pipeline failures to an HTTP status and a message fit for users.
func errorStatus(err error) (int, string) {
	var aErr *assistant.AssistantError
	if !errors.As(err, &aErr) {
		return http.StatusInternalServerError, "Something went wrong on our end."
	}
	switch aErr.Type {
	case assistant.ErrTypeEmptyInput, assistant.ErrTypeValidation:
		return http.StatusBadRequest, aErr.Message
	case assistant.ErrTypeAnswerSource:
		return http.StatusBadGateway, "The medicine service could not answer: " + aErr.Message
	case assistant.ErrTypeTranslation:
		return http.StatusBadGateway, aErr.Message
	case assistant.ErrTypeTimeout:
		return http.StatusGatewayTimeout, aErr.Message
	default:
		return http.StatusInternalServerError, "Something went wrong on our end."
	}
}

func errorType(err error) string {
	var aErr *assistant.AssistantError
	if errors.As(err, &aErr) {
		return string(aErr.Type)
	}
	return "INTERNAL"
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
