package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is advanced by hand so refill tests do not sleep.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestBucket_Take(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)

	for i := 0; i < 10; i++ {
		if ok, _, _ := b.take(now); !ok {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	if ok, _, _ := b.take(now); ok {
		t.Error("Expected 11th request to be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)
	for i := 0; i < 10; i++ {
		b.take(now)
	}

	now = now.Add(1100 * time.Millisecond)
	if ok, _, _ := b.take(now); !ok {
		t.Error("Expected request to be allowed after refill")
	}
	if ok, _, _ := b.take(now); ok {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestBucket_ResetTime(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0, now)
	for i := 0; i < 4; i++ {
		b.take(now)
	}

	_, remaining, reset := b.take(now)
	if remaining != 5 {
		t.Errorf("Expected 5 remaining tokens, got %d", remaining)
	}
	if want := now.Add(5 * time.Second); !reset.Equal(want) {
		t.Errorf("Expected reset at %v, got %v", want, reset)
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/api/stats", "GET"); !allowed {
			t.Fatalf("Expected whitelisted request %d to be allowed", i+1)
		}
	}
	if allowed, _ := limiter.Allow("192.168.1.1", "/api/stats", "GET"); allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/refresh", "POST")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed when disabled", i+1)
		}
		if info.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", info.Limit)
		}
	}
}

func TestLimiter_RefreshIsStricterThanReads(t *testing.T) {
	refresh := EndpointConfig{Path: "/api/refresh", Method: "POST", Limit: 6, Window: time.Minute, Burst: 2}
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(refresh),
	})
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/api/refresh", "POST"); !allowed {
			t.Errorf("Expected refresh %d to be allowed", i+1)
		}
	}
	allowed, info := limiter.Allow("10.0.0.1", "/api/refresh", "POST")
	if allowed {
		t.Error("Expected third immediate refresh to be denied")
	}
	if info.Limit != 6 {
		t.Errorf("Expected limit 6, got %d", info.Limit)
	}

	allowed, info = limiter.Allow("10.0.0.1", "/api/applications", "GET")
	if !allowed {
		t.Error("Expected reads to be unaffected")
	}
	if info.Limit != 600 {
		t.Errorf("Expected default limit 600, got %d", info.Limit)
	}

	if allowed, _ := limiter.Allow("10.0.0.1", "/health", "GET"); !allowed {
		t.Error("Expected health to be unlimited")
	}
}

func TestLimiter_PrefixSharesBucket(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/view/", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	})
	defer limiter.Stop()

	limiter.Allow("10.0.0.1", "/api/view/page/next", "POST")
	limiter.Allow("10.0.0.1", "/api/view/sort/Location", "POST")
	if allowed, _ := limiter.Allow("10.0.0.1", "/api/view/page/prev", "POST"); allowed {
		t.Error("Expected the prefix tier to be exhausted across paths")
	}
}

func TestLimiter_RefillWithClock(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  60,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/refresh", Method: "POST", Limit: 6, Window: time.Minute, Burst: 1},
		},
	}, clock.Now)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("c", "/api/refresh", "POST"); !allowed {
		t.Fatal("Expected first refresh to be allowed")
	}
	allowed, info := limiter.Allow("c", "/api/refresh", "POST")
	if allowed {
		t.Fatal("Expected second refresh to be denied")
	}
	if info.RetryAfter != 10*time.Second {
		t.Errorf("Expected retry after 10s, got %v", info.RetryAfter)
	}

	clock.Advance(10 * time.Second)
	if allowed, _ := limiter.Allow("c", "/api/refresh", "POST"); !allowed {
		t.Error("Expected refresh after refill to be allowed")
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Hour,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/api/stats", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	clock := newFakeClock()
	limiter := newLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTTL:       time.Minute,
	}, clock.Now)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/stats", "GET")
	}
	clock.Advance(2 * time.Minute)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/stats", "GET")
	}

	limiter.cleanupBuckets()
	if n := limiter.bucketCount(); n != 5 {
		t.Errorf("Expected 5 buckets after cleanup, got %d", n)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/refresh", Method: "POST", Limit: 1},
		{Path: "/api/", Method: "PUT", Limit: 2},
		{Path: "/api/charts/", Method: "PUT", Limit: 3},
	}

	tests := []struct {
		path, method string
		want         int // -1 for no match
	}{
		{"/health", "GET", 0},
		{"/api/refresh", "POST", 1},
		{"/api/refresh", "GET", -1},
		{"/api/view/criteria", "PUT", 2},
		{"/api/charts/range", "PUT", 3},
		{"/", "GET", -1},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.want < 0 {
				if got != nil {
					t.Errorf("Expected no match, got %+v", got)
				}
				return
			}
			if got == nil || got.Limit != tt.want {
				t.Errorf("Expected limit %d, got %+v", tt.want, got)
			}
		})
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/api/stats", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if info.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", info.Limit)
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}
