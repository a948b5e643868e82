package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quickfix/booking-service/internal/config"
)

func TestIPLimiterIsPerClient(t *testing.T) {
	limiters := newIPLimiters(config.RateLimitConfig{RPS: 1, Burst: 2})

	assert.True(t, limiters.allow("10.0.0.1"))
	assert.True(t, limiters.allow("10.0.0.1"))
	assert.False(t, limiters.allow("10.0.0.1"))

	// A different client has its own bucket.
	assert.True(t, limiters.allow("10.0.0.2"))
}

func TestIPLimiterSweepsIdleClients(t *testing.T) {
	limiters := newIPLimiters(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	limiters.now = func() time.Time { return now }

	limiters.allow("10.0.0.1")
	limiters.allow("10.0.0.2")
	assert.Len(t, limiters.entries, 2)

	now = now.Add(limiterIdleTTL)
	limiters.allow("10.0.0.3")

	assert.Len(t, limiters.entries, 1)
	assert.Contains(t, limiters.entries, "10.0.0.3")
}
