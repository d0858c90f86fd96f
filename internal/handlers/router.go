// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pillai-nz/go-pillai/internal/middleware"
	"github.com/pillai-nz/go-pillai/internal/ratelimit"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Ask        *AskHandler
	Pages      *PageHandler
	Logs       *LogHandler
	Health     *HealthHandler
	Session    middleware.SessionConfig
	AskLimiter *ratelimit.ClientLimiter
	LogLimiter *ratelimit.ClientLimiter
	CORSOrigin string
	Logger     middleware.Logger
}

func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.CORS(deps.CORSOrigin))
	r.Use(middleware.RecoverPanic(deps.Logger))
	r.Use(middleware.LoggingMiddleware(deps.Logger))

	// --- Public Routes ---
	r.PathPrefix("/static/").Handler(StaticHandler())
	r.HandleFunc("/health", deps.Health.Health).Methods(http.MethodGet)

	// --- Session Routes ---
	visitor := r.PathPrefix("/").Subrouter()
	visitor.Use(middleware.SessionMiddleware(deps.Session, deps.Logger))
	visitor.HandleFunc("/", deps.Pages.ShowIndexPage).Methods(http.MethodGet)

	api := visitor.PathPrefix("/api").Subrouter()
	api.HandleFunc("/languages", deps.Ask.Languages).Methods(http.MethodGet)
	api.HandleFunc("/history", deps.Ask.History).Methods(http.MethodGet)
	api.Handle("/ask", middleware.RateLimitMiddleware(deps.AskLimiter, "ask", deps.Logger)(
		http.HandlerFunc(deps.Ask.Ask))).Methods(http.MethodPost)
	api.Handle("/log", middleware.RateLimitMiddleware(deps.LogLimiter, "log", deps.Logger)(
		http.HandlerFunc(deps.Logs.LogFrontendEvent))).Methods(http.MethodPost)

	// --- Custom Error Handlers ---
	r.NotFoundHandler = http.HandlerFunc(deps.Pages.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(deps.Pages.MethodNotAllowed)

	return r
}
