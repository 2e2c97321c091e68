package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket implements a token bucket rate limiter.
type TokenBucket struct {
	mu         sync.Mutex
	tokens     int
	capacity   int
	rate       int // tokens per second
	lastRefill time.Time
	lastUse    time.Time
}

// NewTokenBucket creates a bucket refilled at rate tokens/second up to capacity.
func NewTokenBucket(rate, capacity int) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		tokens:     capacity,
		capacity:   capacity,
		rate:       rate,
		lastRefill: now,
		lastUse:    now,
	}
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.lastUse = now
	refill := int(now.Sub(tb.lastRefill).Seconds() * float64(tb.rate))
	if refill > 0 {
		tb.tokens += refill
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *TokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastUse.Before(cutoff)
}

// Limiter gates new bridge connections globally and per source address.
// A rate of 0 disables the corresponding check.
type Limiter struct {
	mu         sync.Mutex
	global     *TokenBucket
	perSource  map[string]*TokenBucket
	sourceRate int
	burst      int
}

// New creates a Limiter. globalRate caps connections/second across all
// sources, sourceRate caps connections/second per source IP, burst is the
// bucket capacity for both.
func New(globalRate, sourceRate, burst int) *Limiter {
	l := &Limiter{
		perSource:  make(map[string]*TokenBucket),
		sourceRate: sourceRate,
		burst:      burst,
	}
	if globalRate > 0 {
		l.global = NewTokenBucket(globalRate, burst)
	}
	return l
}

// AllowConnection checks whether a new connection from source may proceed.
func (l *Limiter) AllowConnection(source string) bool {
	if l.global != nil && !l.global.Allow() {
		return false
	}
	if l.sourceRate <= 0 {
		return true
	}
	l.mu.Lock()
	bucket, ok := l.perSource[source]
	if !ok {
		bucket = NewTokenBucket(l.sourceRate, l.burst)
		l.perSource[source] = bucket
	}
	l.mu.Unlock()
	return bucket.Allow()
}

// Sweep drops per-source buckets that have been idle longer than maxIdle so
// the map does not grow without bound.
func (l *Limiter) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for source, bucket := range l.perSource {
		if bucket.idleSince(cutoff) {
			delete(l.perSource, source)
			removed++
		}
	}
	return removed
}
