package interaction

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/pillai-nz/go-pillai/internal/repository"
)

func newTestRepo(t *testing.T) InteractionRepository {
	t.Helper()
	db, err := repository.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.CloseDatabase(db) })
	return NewInteractionRepository(db)
}

func entry(session, question string, status domain.InteractionStatus, created time.Time) *domain.Interaction {
	return &domain.Interaction{
		SessionID: session,
		Question:  question,
		Language:  "en",
		Status:    status,
		CreatedAt: created,
	}
}

func TestCreateAndFindBySessionID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	_, err := repo.Create(ctx, entry("s1", "first", domain.InteractionAnswered, now.Add(-2*time.Minute)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entry("s1", "second", domain.InteractionAnswered, now.Add(-time.Minute)))
	require.NoError(t, err)
	require.NoError(t, repo.Record(ctx, entry("s2", "other", domain.InteractionAnswered, now)))

	history, err := repo.FindBySessionID(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Question)
	assert.Equal(t, "first", history[1].Question)
	assert.NotZero(t, history[0].ID)

	history, err = repo.FindBySessionID(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCreate_Validation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, nil)
	assert.Error(t, err)
	_, err = repo.Create(ctx, entry("", "q", domain.InteractionAnswered, time.Now()))
	assert.Error(t, err)
	_, err = repo.Create(ctx, entry("s1", "  ", domain.InteractionAnswered, time.Now()))
	assert.Error(t, err)
	_, err = repo.Create(ctx, entry("s1", "q", "", time.Now()))
	assert.Error(t, err)

	long := strings.Repeat("ā", maxQuestionLength+10)
	saved, err := repo.Create(ctx, entry("s1", long, domain.InteractionAnswered, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, maxQuestionLength, len([]rune(saved.Question)))
}

func TestFindBySessionID_Validation(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindBySessionID(context.Background(), "", 10)
	assert.Error(t, err)
	_, err = repo.FindBySessionID(context.Background(), "s1", 0)
	assert.Error(t, err)
	_, err = repo.FindBySessionID(context.Background(), "s1", maxHistoryLimit+1)
	assert.Error(t, err)
}

func TestCountByStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	for _, e := range []*domain.Interaction{
		entry("s1", "a", domain.InteractionAnswered, now),
		entry("s1", "b", domain.InteractionAnswered, now),
		entry("s2", "c", domain.InteractionTimedOut, now),
		entry("s2", "d", domain.InteractionAnswerFailed, now.Add(-48*time.Hour)),
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	counts, err := repo.CountByStatus(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.InteractionAnswered])
	assert.Equal(t, int64(1), counts[domain.InteractionTimedOut])
	assert.Zero(t, counts[domain.InteractionAnswerFailed])
}

func TestDeleteOlderThan(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	_, err := repo.Create(ctx, entry("s1", "old", domain.InteractionAnswered, now.Add(-40*24*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, entry("s1", "new", domain.InteractionAnswered, now))
	require.NoError(t, err)

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	history, err := repo.FindBySessionID(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "new", history[0].Question)

	_, err = repo.DeleteOlderThan(ctx, time.Time{})
	assert.Error(t, err)
}
