// File: cmd/server/app.go
package main

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/pillai-nz/go-pillai/internal/config"
	"github.com/pillai-nz/go-pillai/internal/handlers"
	"github.com/pillai-nz/go-pillai/internal/middleware"
	"github.com/pillai-nz/go-pillai/internal/ratelimit"
	"github.com/pillai-nz/go-pillai/internal/repository/interaction"
	"github.com/pillai-nz/go-pillai/internal/services"
	"github.com/pillai-nz/go-pillai/internal/services/answer"
	"github.com/pillai-nz/go-pillai/internal/services/assistant"
	"github.com/pillai-nz/go-pillai/internal/services/reference"
	"github.com/pillai-nz/go-pillai/internal/services/retention"
	"github.com/pillai-nz/go-pillai/internal/services/translate"
	"github.com/pillai-nz/go-pillai/internal/session"
)

// Application aggregates the long-lived pieces main needs to run and stop.
type Application struct {
	Config     *config.Config
	Logger     services.Logger
	Handler    http.Handler
	Sessions   *session.Store
	Retention  *retention.Service
	AskLimiter *ratelimit.ClientLimiter
	LogLimiter *ratelimit.ClientLimiter
}

// Close stops background goroutines owned by the application.
func (a *Application) Close() {
	a.AskLimiter.Close()
	a.LogLimiter.Close()
}

// Provider functions

func ProvideAnswerConfig(cfg *config.Config) *answer.Config {
	answerCfg := answer.DefaultConfig()
	answerCfg.Mode = answer.Mode(cfg.AnswerMode)
	answerCfg.APIKey = cfg.OpenAIAPIKey
	answerCfg.BaseURL = cfg.OpenAIBaseURL
	answerCfg.AssistantID = cfg.AssistantID
	answerCfg.Model = cfg.AnswerModel
	answerCfg.PollTimeout = cfg.PollTimeout
	return answerCfg
}

func ProvideTranslateConfig(cfg *config.Config) *translate.Config {
	translateCfg := translate.DefaultConfig()
	translateCfg.Provider = cfg.TranslationProvider
	translateCfg.APIKey = cfg.OpenAIAPIKey
	translateCfg.BaseURL = cfg.OpenAIBaseURL
	translateCfg.Model = cfg.TranslationModel
	translateCfg.CacheTTL = cfg.TranslationCacheTTL
	return translateCfg
}

func ProvideReferenceConfig(cfg *config.Config) *reference.Config {
	return &reference.Config{
		CatalogPath: cfg.CatalogPath,
		TopN:        cfg.MatchTopN,
		MinScore:    cfg.MatchMinScore,
	}
}

func ProvideAssistantConfig(cfg *config.Config) *assistant.Config {
	assistantCfg := assistant.DefaultConfig()
	assistantCfg.RequestTimeout = cfg.RequestTimeout
	return assistantCfg
}

func ProvideAskLimiterConfig(cfg *config.Config) *ratelimit.Config {
	limiterCfg := ratelimit.DefaultAskConfig()
	limiterCfg.RequestsPerMinute = cfg.RateLimitPerMinute
	limiterCfg.Burst = cfg.RateLimitBurst
	return limiterCfg
}

// ProvideSessionConfig signs session cookies with SESSION_SECRET. Outside
// production a missing secret is replaced by a random one, so sessions do not
// survive a restart.
func ProvideSessionConfig(cfg *config.Config, logger services.Logger) (middleware.SessionConfig, error) {
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return middleware.SessionConfig{}, fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn("SESSION_SECRET not set, using a random secret for this process")
	}
	return middleware.SessionConfig{
		Secret: secret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.IsProduction(),
	}, nil
}

// InitializeApplication builds the ask pipeline and the HTTP surface around it.
func InitializeApplication(cfg *config.Config, logger services.Logger, db *gorm.DB) (*Application, error) {
	// --- Reference catalog ---
	refCfg := ProvideReferenceConfig(cfg)
	if err := refCfg.Validate(); err != nil {
		return nil, err
	}
	catalog := reference.LoadCatalogOrEmpty(refCfg.CatalogPath, logger)
	matcher := reference.NewMatcher(catalog, refCfg, logger)

	// --- External services ---
	source, err := answer.NewSource(ProvideAnswerConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("answer source: %w", err)
	}
	translator, err := translate.NewProvider(ProvideTranslateConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("translator: %w", err)
	}

	// --- Repositories ---
	interactions := interaction.NewInteractionRepository(db)

	// --- Core Services ---
	assistantService, err := assistant.NewService(
		ProvideAssistantConfig(cfg), source, translator, matcher, interactions, logger)
	if err != nil {
		return nil, err
	}
	retentionService, err := retention.NewService(&retention.Config{
		RetentionDays: cfg.RetentionDays,
		Interval:      24 * time.Hour,
	}, interactions, logger)
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(cfg.SessionTTL, logger)

	// --- Handlers ---
	askHandler, err := handlers.NewAskHandler(assistantService, sessions, interactions, logger)
	if err != nil {
		return nil, err
	}
	pageHandler, err := handlers.NewPageHandler(handlers.PageConfig{
		Disclaimer:       assistant.DefaultDisclaimer,
		MaxQuestionChars: assistant.DefaultConfig().MaxQuestionChars,
	})
	if err != nil {
		return nil, err
	}
	sessionCfg, err := ProvideSessionConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	askLimiter := ratelimit.NewClientLimiter(ProvideAskLimiterConfig(cfg))
	logLimiter := ratelimit.NewClientLimiter(ratelimit.DefaultLogConfig())

	router := handlers.NewRouter(handlers.RouterDeps{
		Ask:        askHandler,
		Pages:      pageHandler,
		Logs:       handlers.NewLogHandler(logger),
		Health:     handlers.NewHealthHandler(matcher.Catalog().Len, sessions.Len),
		Session:    sessionCfg,
		AskLimiter: askLimiter,
		LogLimiter: logLimiter,
		CORSOrigin: cfg.CORSOrigin,
		Logger:     logger,
	})

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Handler:    router,
		Sessions:   sessions,
		Retention:  retentionService,
		AskLimiter: askLimiter,
		LogLimiter: logLimiter,
	}, nil
}
