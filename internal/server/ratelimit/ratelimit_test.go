package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(cfg *Config) (*Limiter, *time.Time) {
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(cfg)
	l.now = func() time.Time { return clock }
	return l, &clock
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/skills/rank", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/skills/rank", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6*time.Second, info.RetryAfter, float64(10*time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute, Endpoints: []EndpointConfig{
		{Path: "/charts", Method: "POST", Limit: 60, Window: time.Minute, Burst: 2},
	}})
	defer l.Stop()

	assert.True(t, first(l.Allow("c", "/charts", "POST")))
	assert.True(t, first(l.Allow("c", "/charts", "POST")))
	assert.False(t, first(l.Allow("c", "/charts", "POST")))

	*clock = clock.Add(time.Second)
	assert.True(t, first(l.Allow("c", "/charts", "POST")))
	assert.False(t, first(l.Allow("c", "/charts", "POST")))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer l.Stop()

	assert.True(t, first(l.Allow("a", "/analyses", "GET")))
	assert.False(t, first(l.Allow("a", "/analyses", "GET")))
	assert.True(t, first(l.Allow("b", "/analyses", "GET")))
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     ParseIPList("10.0.0.1, 10.0.0.2"),
		Blacklist:     ParseIPList("10.0.0.9"),
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, first(l.Allow("10.0.0.1", "/charts", "POST")))
	}
	assert.False(t, first(l.Allow("10.0.0.9", "/health", "GET")))
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, first(l.Allow("c", "/charts", "POST")))
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(DefaultConfig(1000, "", ""))
	defer l.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, first(l.Allow("c", "/reports/generate", "POST")), "burst request %d", i+1)
	}
	allowed, info := l.Allow("c", "/reports/generate", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 20, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Minute)

	// other routes keep the default limit
	assert.True(t, first(l.Allow("c", "/analyses", "GET")))
}

func TestLimiter_ProbesUnlimited(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, first(l.Allow("c", "/health", "GET")))
		assert.True(t, first(l.Allow("c", "/metrics", "GET")))
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Minute})
	defer l.Stop()

	l.Allow("old", "/charts", "POST")
	*clock = clock.Add(2 * time.Minute)
	l.Allow("new", "/charts", "POST")
	require.Equal(t, 2, l.Len())

	l.Cleanup()
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer l.Stop()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/charts", "POST"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowed.Load())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	assert.True(t, first(l.Allow("c", "/charts", "POST")))
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	assert.Equal(t, "/analyses", MatchEndpoint("/analyses", "POST", configs).Path)
	assert.Equal(t, "/analyses/", MatchEndpoint("/analyses/0b3c", "DELETE", configs).Path)
	assert.Nil(t, MatchEndpoint("/analyses/0b3c", "GET", configs))
	assert.Equal(t, 0, MatchEndpoint("/health", "GET", configs).Limit)
}

func first(ok bool, _ Info) bool { return ok }
