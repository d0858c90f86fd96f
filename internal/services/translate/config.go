// File: internal/services/translate/config.go
package translate

import (
	"fmt"
	"time"
)

const (
	ProviderGoogle = "google"
	ProviderLLM    = "llm"
)

type Config struct {
	Provider string

	// Google web endpoint
	GoogleBaseURL string
	MaxChunkChars int

	// LLM provider
	APIKey  string
	BaseURL string
	Model   string

	Timeout    time.Duration
	MaxRetries uint64
	RetryDelay time.Duration
	CacheTTL   time.Duration
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGoogle:
		if c.GoogleBaseURL == "" {
			return fmt.Errorf("google translate base URL is required")
		}
		if c.MaxChunkChars <= 0 {
			return fmt.Errorf("max chunk size must be positive")
		}
	case ProviderLLM:
		if c.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the llm translator")
		}
		if c.Model == "" {
			return fmt.Errorf("TRANSLATION_MODEL is required for the llm translator")
		}
	default:
		return fmt.Errorf("unknown translation provider %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("translation timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderGoogle,
		GoogleBaseURL: "https://translate.googleapis.com",
		MaxChunkChars: 4500,
		Model:         "gpt-4o-mini",
		Timeout:       30 * time.Second,
		MaxRetries:    2,
		RetryDelay:    500 * time.Millisecond,
		CacheTTL:      6 * time.Hour,
	}
}
