// File: internal/services/answer/config.go
package answer

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModeAssistant  Mode = "assistant"  // hosted assistant with threads and runs
	ModeCompletion Mode = "completion" // stateless chat completion
)

type Config struct {
	Mode    Mode
	APIKey  string
	BaseURL string

	// Assistant mode
	AssistantID string

	// Completion mode
	Model       string
	Temperature float32
	TopP        float32

	// Run polling
	PollInitialInterval time.Duration
	PollMaxInterval     time.Duration
	PollTimeout         time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	switch c.Mode {
	case ModeAssistant:
		if c.AssistantID == "" {
			return fmt.Errorf("ASSISTANT_ID is required in assistant mode")
		}
		if c.PollInitialInterval <= 0 || c.PollMaxInterval <= 0 {
			return fmt.Errorf("poll intervals must be positive")
		}
		if c.PollTimeout <= 0 {
			return fmt.Errorf("poll timeout must be positive")
		}
	case ModeCompletion:
		if c.Model == "" {
			return fmt.Errorf("ANSWER_MODEL is required in completion mode")
		}
	default:
		return fmt.Errorf("unknown answer mode %q", c.Mode)
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Mode:                ModeAssistant,
		Model:               "gpt-4o-mini",
		Temperature:         0.1,
		TopP:                0.9,
		PollInitialInterval: 500 * time.Millisecond,
		PollMaxInterval:     4 * time.Second,
		PollTimeout:         90 * time.Second,
	}
}
