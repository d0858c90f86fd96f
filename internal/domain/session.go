// File: internal/domain/session.go
package domain

import "time"

// Session is the per-visitor conversation context. It is owned by the caller
// and handed to the ask pipeline explicitly; nothing keeps a global copy.
type Session struct {
	ID           string
	ThreadID     string // conversation handle on the answer source, empty until the first answer
	Language     string
	LastQuestion string
	LastAnswer   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
