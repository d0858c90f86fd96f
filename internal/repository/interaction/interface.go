package interaction

import (
	"context"
	"time"

	"github.com/pillai-nz/go-pillai/internal/domain"
)

// InteractionRepository stores the question log.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error)
	Record(ctx context.Context, interaction *domain.Interaction) error
	FindBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.Interaction, error)
	CountByStatus(ctx context.Context, since time.Time) (map[domain.InteractionStatus]int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
