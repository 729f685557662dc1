// Package ratelimit limits requests per client and endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// bucket holds up to capacity tokens and refills at rate tokens per second.
type bucket struct {
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		rate:       rate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

// refill must be called with mu held.
func (b *bucket) refill(now time.Time) {
	if elapsed := now.Sub(b.lastRefill).Seconds(); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	}
	b.lastRefill = now
}

// take consumes one token if available and reports the remaining whole tokens
// and when the bucket will be full again.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, full time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	b.lastAccess = now
	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	}

	full = now
	if missing := b.capacity - b.tokens; missing > 0 && b.rate > 0 {
		full = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	}
	return allowed, int(b.tokens), full
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAccess.Before(cutoff)
}

// Info describes the limit applied to one request.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept; zero means one hour.
	IdleTTL         time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
	// UnlimitedPaths are exempt from limiting for any method.
	UnlimitedPaths []string
}

// Limiter tracks one bucket per client, endpoint and method.
type Limiter struct {
	config  *Config
	now     Clock
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	done    sync.Once
}

// NewLimiter creates a limiter and starts its cleanup loop when enabled.
func NewLimiter(config *Config) *Limiter {
	return newLimiter(config, time.Now)
}

func newLimiter(config *Config, now Clock) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    DefaultLimit,
			DefaultWindow:   DefaultWindow,
			CleanupInterval: DefaultCleanupInterval,
		}
	}

	l := &Limiter{
		config:  config,
		now:     now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Allow reports whether clientID may call method on path.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	rule := MatchEndpoint(path, method, l.config.EndpointConfigs, l.config.UnlimitedPaths)
	if rule == nil {
		rule = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(clientID+"|"+method+"|"+path, rule, now)
	allowed, remaining, full := b.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		ResetTime: full,
	}
	if !allowed {
		// One token arrives after window/limit.
		info.RetryAfter = time.Duration(float64(rule.Window) / float64(rule.Limit))
	}
	return allowed, info
}

func (l *Limiter) bucketFor(key string, rule *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.stop:
			return
		}
	}
}

// evictIdle drops buckets unused for longer than the idle TTL.
func (l *Limiter) evictIdle() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.done.Do(func() { close(l.stop) })
}
