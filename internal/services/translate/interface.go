// File: internal/services/translate/interface.go
package translate

import "context"

// Provider translates English answer text into a target language.
type Provider interface {
	Translate(ctx context.Context, text string, target Language) (string, error)
}

// Logger defines the logging interface used by translation providers
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// NewProvider builds the configured provider, wrapped in a cache when
// CacheTTL is positive.
func NewProvider(config *Config, logger Logger) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, &TranslationError{Type: ErrTypeConfig, Message: err.Error()}
	}

	var provider Provider
	switch config.Provider {
	case ProviderLLM:
		provider = NewLLMProvider(config, logger)
	default:
		provider = NewGoogleProvider(config, logger)
	}

	if config.CacheTTL > 0 {
		provider = NewCachedProvider(provider, config.CacheTTL, logger)
	}
	return provider, nil
}
