// File: internal/services/assistant/config.go
package assistant

import (
	"fmt"
	"time"
)

type Config struct {
	RequestTimeout   time.Duration // whole ask: answer source plus translation
	MaxQuestionChars int
	Disclaimer       string
}

func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.MaxQuestionChars <= 0 {
		return fmt.Errorf("max question length must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		RequestTimeout:   120 * time.Second,
		MaxQuestionChars: 2000,
		Disclaimer:       DefaultDisclaimer,
	}
}

const DefaultDisclaimer = "Pill-AI gives general information about medicines. It is not a substitute for " +
	"professional medical advice. Talk to your pharmacist, doctor or nurse about your own situation."
