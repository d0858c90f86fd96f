// File: internal/services/retention/service.go
package retention

import (
	"context"
	"fmt"
	"time"
)

// Logger defines the logging interface used by the retention worker
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Purger deletes question log entries older than a cutoff.
type Purger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	RetentionDays int           // 0 keeps entries forever
	Interval      time.Duration // time between purges
}

func (c *Config) Validate() error {
	if c.RetentionDays < 0 {
		return fmt.Errorf("retention days cannot be negative")
	}
	if c.RetentionDays > 0 && c.Interval <= 0 {
		return fmt.Errorf("purge interval must be positive")
	}
	return nil
}

// Service periodically removes expired question log entries.
type Service struct {
	config *Config
	purger Purger
	logger Logger
	now    func() time.Time
}

func NewService(config *Config, purger Purger, logger Logger) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{config: config, purger: purger, logger: logger, now: time.Now}, nil
}

// PurgeOnce deletes everything older than the retention window.
func (s *Service) PurgeOnce(ctx context.Context) (int64, error) {
	if s.config.RetentionDays == 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)
	deleted, err := s.purger.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Retention purge failed", "error", err)
		return 0, err
	}
	s.logger.Info("Retention purge finished", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	return deleted, nil
}

// Run purges immediately and then on every interval until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if s.config.RetentionDays == 0 {
		s.logger.Info("Retention purge disabled")
		return
	}

	_, _ = s.PurgeOnce(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_, _ = s.PurgeOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}
