package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "assistant", cfg.AnswerMode)
	assert.Equal(t, 3, cfg.MatchTopN)
	assert.Equal(t, 0.5, cfg.MatchMinScore)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Chdir(t.TempDir())
	t.Setenv("MATCH_TOP_N", "5")
	t.Setenv("MATCH_MIN_SCORE", "0.25")
	t.Setenv("POLL_TIMEOUT", "45")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MatchTopN)
	assert.Equal(t, 0.25, cfg.MatchMinScore)
	assert.Equal(t, 45*time.Second, cfg.PollTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("ASSISTANT_ID", "")
	t.Setenv("ANSWER_MODE", "assistant")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "ASSISTANT_ID")
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ASSISTANT_ID", "asst_1")
	t.Setenv("SESSION_SECRET", "secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_Ranges(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Chdir(t.TempDir())
	t.Setenv("MATCH_MIN_SCORE", "1.5")
	_, err := Load()
	assert.ErrorContains(t, err, "MATCH_MIN_SCORE")
}
