package middlewares

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_PerKeyBuckets(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(60, 2) // one token per second
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// other clients have their own bucket
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(60, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	assert.Equal(t, 2, rl.size())

	now = now.Add(visitorTTL + time.Second)
	rl.Allow("c")
	assert.Equal(t, 1, rl.size())
}

func TestRateLimiter_SweepsAtMostOncePerInterval(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	now := start
	rl := NewRateLimiter(60, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("a")

	now = start.Add(visitorTTL)
	rl.Allow("b") // sweeps, "a" is idle for exactly ttl and stays
	assert.Equal(t, 2, rl.size())

	now = now.Add(sweepInterval / 2)
	rl.Allow("c") // "a" is now stale but no sweep is due yet
	assert.Equal(t, 3, rl.size())

	now = now.Add(sweepInterval / 2)
	rl.Allow("d")
	assert.Equal(t, 3, rl.size())
	rl.mu.Lock()
	_, stillThere := rl.visitors["a"]
	rl.mu.Unlock()
	assert.False(t, stillThere)
}
