package interaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pillai-nz/go-pillai/internal/domain"
)

const (
	maxQuestionLength = 4000
	maxHistoryLimit   = 100
)

type gormInteractionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &gormInteractionRepository{db: db}
}

// Create stores one question log entry.
func (r *gormInteractionRepository) Create(ctx context.Context, interaction *domain.Interaction) (*domain.Interaction, error) {
	if err := r.validateInteraction(interaction); err != nil {
		log.Printf("[InteractionRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(interaction).Error; err != nil {
		// question text stays out of the log
		log.Printf("[InteractionRepository] Database error recording interaction for session %s: %v", interaction.SessionID, err)
		return nil, errors.New("database error recording interaction")
	}
	return interaction, nil
}

// Record adapts Create to the ask pipeline's recorder.
func (r *gormInteractionRepository) Record(ctx context.Context, interaction *domain.Interaction) error {
	_, err := r.Create(ctx, interaction)
	return err
}

// FindBySessionID returns the newest entries of one session first.
func (r *gormInteractionRepository) FindBySessionID(ctx context.Context, sessionID string, limit int) ([]domain.Interaction, error) {
	if sessionID == "" {
		return nil, errors.New("invalid session ID")
	}
	if limit <= 0 || limit > maxHistoryLimit {
		return nil, fmt.Errorf("invalid limit: must be between 1 and %d", maxHistoryLimit)
	}

	var interactions []domain.Interaction
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&interactions).Error
	if err != nil {
		log.Printf("[InteractionRepository] Database error fetching history for session %s: %v", sessionID, err)
		return nil, errors.New("database error fetching history")
	}
	return interactions, nil
}

// CountByStatus tallies outcomes of questions asked since the given time.
func (r *gormInteractionRepository) CountByStatus(ctx context.Context, since time.Time) (map[domain.InteractionStatus]int64, error) {
	var rows []struct {
		Status domain.InteractionStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Interaction{}).
		Select("status, COUNT(*) AS total").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		log.Printf("[InteractionRepository] Database error counting interactions: %v", err)
		return nil, errors.New("database error counting interactions")
	}

	counts := make(map[domain.InteractionStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// DeleteOlderThan purges entries created before cutoff.
func (r *gormInteractionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, errors.New("invalid cutoff time")
	}

	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.Interaction{})
	if result.Error != nil {
		log.Printf("[InteractionRepository] Database error purging interactions: %v", result.Error)
		return 0, errors.New("database error purging interactions")
	}

	if result.RowsAffected > 0 {
		log.Printf("[InteractionRepository] Purged %d interactions older than %s", result.RowsAffected, cutoff.Format(time.RFC3339))
	}
	return result.RowsAffected, nil
}

func (r *gormInteractionRepository) validateInteraction(interaction *domain.Interaction) error {
	if interaction == nil {
		return errors.New("interaction cannot be nil")
	}
	if interaction.SessionID == "" {
		return errors.New("session ID is required")
	}
	if strings.TrimSpace(interaction.Question) == "" {
		return errors.New("question cannot be empty")
	}
	if runes := []rune(interaction.Question); len(runes) > maxQuestionLength {
		interaction.Question = string(runes[:maxQuestionLength])
	}
	if interaction.Status == "" {
		return errors.New("status is required")
	}
	return nil
}
