// File: internal/services/answer/interface.go
package answer

import "context"

// Request is one question sent to the answer source.
type Request struct {
	Question string
	Simplify bool
	// ThreadID continues an earlier conversation when the provider supports it.
	ThreadID string
}

// Answer is the raw reply, citation markers included.
type Answer struct {
	Text     string
	ThreadID string
	RunID    string
}

// Source produces free-text answers to medicine questions. Ask blocks until
// the provider reaches a terminal state or ctx ends. Implementations never
// retry on their own.
type Source interface {
	Ask(ctx context.Context, req Request) (*Answer, error)
}

// Logger defines the logging interface used by answer providers
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// NewSource builds the provider selected by config.Mode.
func NewSource(config *Config, logger Logger) (Source, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	switch config.Mode {
	case ModeCompletion:
		return NewCompletionProvider(config, logger), nil
	default:
		return NewAssistantProvider(config, logger), nil
	}
}
