// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds rate limiting configuration
type Config struct {
	RequestsPerMinute int           // sustained rate per client
	Burst             int           // requests allowed at once
	IdleTimeout       time.Duration // forget clients idle this long
	CleanupPeriod     time.Duration // how often to forget idle clients
}

// DefaultAskConfig returns limits for the question endpoint. Each question
// costs a hosted assistant run, so the budget is small.
func DefaultAskConfig() *Config {
	return &Config{
		RequestsPerMinute: 10,
		Burst:             3,
		IdleTimeout:       30 * time.Minute,
		CleanupPeriod:     10 * time.Minute,
	}
}

// DefaultLogConfig returns limits for the frontend log endpoint.
func DefaultLogConfig() *Config {
	return &Config{
		RequestsPerMinute: 60,
		Burst:             20,
		IdleTimeout:       30 * time.Minute,
		CleanupPeriod:     10 * time.Minute,
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client identifier
type ClientLimiter struct {
	config  *Config
	limit   rate.Limit
	clients map[string]*client
	mu      sync.Mutex
	stopCh  chan struct{}
	once    sync.Once
}

// NewClientLimiter creates a limiter and starts its cleanup goroutine
func NewClientLimiter(config *Config) *ClientLimiter {
	if config.Burst <= 0 {
		config.Burst = 1
	}
	l := &ClientLimiter{
		config:  config,
		limit:   rate.Every(time.Minute / time.Duration(max(config.RequestsPerMinute, 1))),
		clients: make(map[string]*client),
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// RateLimitInfo contains information about rate limit status
type RateLimitInfo struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Allow takes one token for identifier if one is available now
func (l *ClientLimiter) Allow(identifier string) (bool, *RateLimitInfo) {
	now := time.Now()
	lim := l.get(identifier, now)

	reservation := lim.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if !reservation.OK() || delay > 0 {
		reservation.CancelAt(now)
		return false, &RateLimitInfo{
			Allowed:    false,
			Limit:      l.config.Burst,
			Remaining:  0,
			RetryAfter: delay,
		}
	}

	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return true, &RateLimitInfo{
		Allowed:   true,
		Limit:     l.config.Burst,
		Remaining: remaining,
	}
}

func (l *ClientLimiter) get(identifier string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[identifier]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.config.Burst)}
		l.clients[identifier] = c
	}
	c.lastSeen = now
	return c.limiter
}

// Clients returns the number of tracked clients
func (l *ClientLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *ClientLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(time.Now())
		case <-l.stopCh:
			return
		}
	}
}

func (l *ClientLimiter) cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for identifier, c := range l.clients {
		if now.Sub(c.lastSeen) > l.config.IdleTimeout {
			delete(l.clients, identifier)
		}
	}
}

// Close stops the cleanup goroutine
func (l *ClientLimiter) Close() {
	l.once.Do(func() { close(l.stopCh) })
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// parseFirstIP extracts the first IP from a comma-separated list
func parseFirstIP(forwarded string) string {
	first, _, _ := strings.Cut(forwarded, ",")
	return strings.TrimSpace(first)
}
