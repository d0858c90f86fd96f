// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	LogFile     string

	// Answer source
	OpenAIAPIKey  string
	OpenAIBaseURL string
	AnswerMode    string // "assistant" or "completion"
	AssistantID   string
	AnswerModel   string
	PollTimeout   time.Duration

	// Translation
	TranslationProvider string // "google" or "llm"
	TranslationModel    string
	TranslationCacheTTL time.Duration

	// Reference matching
	CatalogPath   string
	MatchTopN     int
	MatchMinScore float64

	RequestTimeout time.Duration

	// Question log
	DatabasePath  string
	RetentionDays int

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	RateLimitPerMinute int
	RateLimitBurst     int
	CORSOrigin         string
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFile:     getEnv("LOG_FILE", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		AnswerMode:    getEnv("ANSWER_MODE", "assistant"),
		AssistantID:   getEnv("ASSISTANT_ID", ""),
		AnswerModel:   getEnv("ANSWER_MODEL", "gpt-4o-mini"),
		PollTimeout:   getEnvAsDuration("POLL_TIMEOUT", 90*time.Second),

		TranslationProvider: getEnv("TRANSLATION_PROVIDER", "google"),
		TranslationModel:    getEnv("TRANSLATION_MODEL", "gpt-4o-mini"),
		TranslationCacheTTL: getEnvAsDuration("TRANSLATION_CACHE_TTL", 6*time.Hour),

		CatalogPath:   getEnv("CATALOG_PATH", "medsafe_source_links_cleaned.json"),
		MatchTopN:     getEnvAsInt("MATCH_TOP_N", 3),
		MatchMinScore: getEnvAsFloat("MATCH_MIN_SCORE", 0.5),

		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 120*time.Second),

		DatabasePath:  getEnv("DATABASE_PATH", "pillai.db"),
		RetentionDays: getEnvAsInt("RETENTION_DAYS", 30),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 3),
		CORSOrigin:         getEnv("CORS_ORIGIN", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges everywhere and required secrets in production.
func (c *Config) Validate() error {
	if c.MatchTopN <= 0 {
		return fmt.Errorf("MATCH_TOP_N must be positive")
	}
	if c.MatchMinScore < 0 || c.MatchMinScore > 1 {
		return fmt.Errorf("MATCH_MIN_SCORE must be between 0 and 1")
	}
	if c.RequestTimeout <= 0 || c.PollTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT and POLL_TIMEOUT must be positive")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("RETENTION_DAYS cannot be negative")
	}

	if c.IsProduction() {
		missing := []string{}
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
		if c.AnswerMode == "assistant" && c.AssistantID == "" {
			missing = append(missing, "ASSISTANT_ID")
		}
		if c.SessionSecret == "" {
			missing = append(missing, "SESSION_SECRET")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as float. Using default value.", key)
		return defaultValue
	}
	return floatValue
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
	return defaultValue
}
