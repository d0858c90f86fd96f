// File: internal/services/assistant/types.go
package assistant

import (
	"context"

	"github.com/pillai-nz/go-pillai/internal/domain"
)

// Logger defines the logging interface used by the ask pipeline
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type AskRequest struct {
	Question string
	Language string
	Simplify bool
}

type AskResponse struct {
	Answer     string               `json:"answer"`
	Language   string               `json:"language"`
	References []domain.MatchResult `json:"references"`
	Disclaimer string               `json:"disclaimer"`
}

// ReferenceMatcher finds catalog links related to an answer.
type ReferenceMatcher interface {
	Match(answer string) []domain.MatchResult
}

// Recorder stores the question log.
type Recorder interface {
	Record(ctx context.Context, interaction *domain.Interaction) error
}
