// File: internal/domain/interaction.go
package domain

import "time"

type InteractionStatus string

const (
	InteractionAnswered          InteractionStatus = "answered"
	InteractionAnswerFailed      InteractionStatus = "answer_failed"
	InteractionTranslationFailed InteractionStatus = "translation_failed"
	InteractionTimedOut          InteractionStatus = "timed_out"
)

// Interaction records one submitted question. Only the question is kept, never
// the generated answer.
type Interaction struct {
	ID             uint              `json:"id" gorm:"primarykey"`
	SessionID      string            `json:"-" gorm:"index;not null;size:64"`
	Question       string            `json:"question" gorm:"not null"`
	Language       string            `json:"language" gorm:"size:16"`
	Simplified     bool              `json:"simplified"`
	Status         InteractionStatus `json:"status" gorm:"index;size:32"`
	ReferenceCount int               `json:"reference_count"`
	DurationMs     int64             `json:"duration_ms"`
	CreatedAt      time.Time         `json:"created_at" gorm:"index"`
}
