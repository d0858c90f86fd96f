// File: internal/session/store.go
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/pillai-nz/go-pillai/internal/domain"
)

// Logger defines the logging interface used by the session store
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

type entry struct {
	mu      sync.Mutex
	session *domain.Session
}

// Store keeps conversation context per visitor in memory. Idle sessions expire
// after the configured TTL. Each session has its own lock, so requests of one
// visitor run one at a time while different visitors proceed in parallel.
type Store struct {
	cache  *cache.Cache
	logger Logger
}

func NewStore(ttl time.Duration, logger Logger) *Store {
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, _ interface{}) {
		logger.Debug("Session expired", "session_id", id)
	})
	return &Store{cache: c, logger: logger}
}

// NewID returns a fresh random session identifier.
func NewID() string {
	return uuid.NewString()
}

// With runs fn while holding the session's lock, creating the session if it
// is unknown or has expired. The session's idle timer restarts afterwards.
func (s *Store) With(id string, fn func(*domain.Session) error) error {
	e := s.load(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	err := fn(e.session)
	s.cache.Set(id, e, cache.DefaultExpiration)
	return err
}

// Snapshot returns a copy of the session, if present.
func (s *Store) Snapshot(id string) (domain.Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return domain.Session{}, false
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.session, true
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Len() int {
	return s.cache.ItemCount()
}

func (s *Store) load(id string) *entry {
	for {
		if v, ok := s.cache.Get(id); ok {
			return v.(*entry)
		}
		now := time.Now()
		e := &entry{session: &domain.Session{ID: id, CreatedAt: now, UpdatedAt: now}}
		if err := s.cache.Add(id, e, cache.DefaultExpiration); err == nil {
			s.logger.Debug("Session created", "session_id", id)
			return e
		}
	}
}
