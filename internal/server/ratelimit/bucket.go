package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket holds up to capacity tokens and refills at refillRate tokens per second.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
	}
}

// take consumes one token if available. It returns whether the token was taken, the whole
// tokens left, and when the bucket will be full again.
func (b *tokenBucket) take(now time.Time) (bool, int, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}
	return allowed, int(b.tokens), b.fullAt(now)
}

func (b *tokenBucket) refill(now time.Time) {
	if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.refillRate)
	}
	b.lastRefill = now
}

// nextTokenAt returns when at least one token will be available.
func (b *tokenBucket) nextTokenAt(now time.Time) time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tokens >= 1 || b.refillRate <= 0 {
		return now
	}
	return now.Add(time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second)))
}

func (b *tokenBucket) fullAt(now time.Time) time.Time {
	if b.tokens >= b.capacity || b.refillRate <= 0 {
		return now
	}
	return now.Add(time.Duration((b.capacity - b.tokens) / b.refillRate * float64(time.Second)))
}
