// File: internal/handlers/page_handlers.go
package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/pillai-nz/go-pillai/internal/services/translate"
	"github.com/pillai-nz/go-pillai/web"
)

const PrivacyNotice = "Pill-AI keeps the questions you type for a limited time so we can improve the service. " +
	"Please do not include your name, NHI number or other details that identify you. " +
	"Answers are generated on request and are not stored."

// PageConfig carries the text shown on every page.
type PageConfig struct {
	Disclaimer       string
	MaxQuestionChars int
}

type PageHandler struct {
	templates map[string]*template.Template
	config    PageConfig
}

// NewPageHandler parses one template set per page, each layered on layout.html.
func NewPageHandler(config PageConfig) (*PageHandler, error) {
	return newPageHandler(web.Templates, config)
}

func newPageHandler(fsys fs.FS, config PageConfig) (*PageHandler, error) {
	templates := make(map[string]*template.Template)
	for _, page := range []string{"index.html", "error.html"} {
		ts, err := template.New(page).ParseFS(fsys, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[page] = ts
	}
	return &PageHandler{templates: templates, config: config}, nil
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page string, data map[string]interface{}) {
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}
	data["Disclaimer"] = h.config.Disclaimer

	t, ok := h.templates[page]
	if !ok {
		log.Printf("Template %s not found in cache", page)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("Template render error for %s: %v", page, err)
	}
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

func (h *PageHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "index.html", map[string]interface{}{
		"Languages":        translate.Supported(),
		"PrivacyNotice":    PrivacyNotice,
		"MaxQuestionChars": h.config.MaxQuestionChars,
	})
}

func (h *PageHandler) ShowErrorPage(w http.ResponseWriter, status int, message, description string) {
	h.render(w, status, "error.html", map[string]interface{}{
		"Code":        status,
		"Message":     message,
		"Description": description,
	})
}

// NotFound renders the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.ShowErrorPage(w, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
}

// MethodNotAllowed renders the 405 page.
func (h *PageHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.ShowErrorPage(w, http.StatusMethodNotAllowed, "Method Not Allowed", "The method is not allowed for this resource.")
}

// StaticHandler serves the embedded browser assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
