// Package ratelimit throttles API clients with token buckets, one bucket per client, route and method.
// Oracle-backed routes get tight limits; everything else shares a lenient default.
package ratelimit

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// idleExpiry is how long an untouched bucket is kept before it is dropped
const idleExpiry = time.Hour

// TokenBucket allows up to capacity requests at once and refills at a steady rate
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// take refills the bucket, consumes a token when one is available and reports what is left
func (tb *TokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.refillLocked()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		allowed = true
	}
	return allowed, int(tb.tokens), tb.fullAtLocked(now)
}

// status reports the bucket without consuming a token
func (tb *TokenBucket) status() (remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.refillLocked()
	return int(tb.tokens), tb.fullAtLocked(now)
}

func (tb *TokenBucket) refillLocked() time.Time {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
	return now
}

func (tb *TokenBucket) fullAtLocked(now time.Time) time.Time {
	if tb.tokens >= float64(tb.capacity) || tb.refillRate <= 0 {
		return now
	}
	missing := float64(tb.capacity) - tb.tokens
	return now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
}

// Info describes the limit applied to one request
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter hands out token buckets per client. Idle buckets expire on their own.
type Limiter struct {
	config  *Config
	buckets *cache.Cache
	mu      sync.Mutex
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewLimiter creates a limiter. A nil config allows 1000 requests per minute on every route.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       make(map[string]bool),
			Blacklist:       make(map[string]bool),
		}
	}

	cleanup := config.CleanupInterval
	if !config.Enabled || cleanup < 0 {
		cleanup = 0
	}

	return &Limiter{
		config:  config,
		buckets: cache.New(idleExpiry, cleanup),
	}
}

// Allow decides whether clientID may call method on path
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Path:   path,
			Method: method,
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpoint.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	// Buckets are keyed by the matched pattern so every field of a wildcard route shares one
	key := clientID + ":" + endpoint.Path + ":" + method
	bucket := l.bucket(key, endpoint)

	allowed, remaining, resetTime := bucket.take()
	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(resetTime), 0)
	}
	return allowed, info
}

// bucket returns the bucket for key, creating it on first use, and slides its expiry
func (l *Limiter) bucket(key string, endpoint *EndpointConfig) *TokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.buckets.Get(key); ok {
		bucket := cached.(*TokenBucket)
		l.buckets.SetDefault(key, bucket)
		return bucket
	}

	capacity := endpoint.Burst
	if capacity <= 0 {
		capacity = endpoint.Limit
	}
	window := endpoint.Window
	if window <= 0 {
		window = time.Minute
	}
	bucket := newTokenBucket(capacity, float64(endpoint.Limit)/window.Seconds())
	l.buckets.SetDefault(key, bucket)
	return bucket
}

// Len returns the number of live buckets
func (l *Limiter) Len() int {
	return l.buckets.ItemCount()
}

// Stop drops every bucket
func (l *Limiter) Stop() {
	l.buckets.Flush()
}
