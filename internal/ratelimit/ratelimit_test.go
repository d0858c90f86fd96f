package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLimiter_BurstThenDeny(t *testing.T) {
	l := NewClientLimiter(&Config{RequestsPerMinute: 1, Burst: 2, IdleTimeout: time.Minute, CleanupPeriod: time.Minute})
	defer l.Close()

	ok, info := l.Allow("1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, info.Remaining)

	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)

	ok, info = l.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	ok, _ = l.Allow("5.6.7.8")
	assert.True(t, ok, "clients have separate buckets")
}

func TestClientLimiter_DeniedRequestDoesNotConsume(t *testing.T) {
	l := NewClientLimiter(&Config{RequestsPerMinute: 6000, Burst: 1, IdleTimeout: time.Minute, CleanupPeriod: time.Minute})
	defer l.Close()

	ok, _ := l.Allow("c")
	require.True(t, ok)
	ok, _ = l.Allow("c")
	require.False(t, ok)

	time.Sleep(15 * time.Millisecond)
	ok, _ = l.Allow("c")
	assert.True(t, ok)
}

func TestClientLimiter_Cleanup(t *testing.T) {
	l := NewClientLimiter(&Config{RequestsPerMinute: 10, Burst: 1, IdleTimeout: time.Minute, CleanupPeriod: time.Hour})
	defer l.Close()

	l.Allow("a")
	l.Allow("b")
	assert.Equal(t, 2, l.Clients())

	l.cleanup(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, l.Clients())
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", GetClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.3")
	assert.Equal(t, "203.0.113.9", GetClientIP(r))
}
