// Package ratelimit paces outgoing requests on the client side.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter blocks until a request may be sent.
type Limiter interface {
	Wait(ctx context.Context) error
	Allow() bool
}

// TokenBucket is a token bucket refilled once per elapsed second.
type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate int // tokens added per elapsed second
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket of the given capacity.
func NewTokenBucket(capacity, refillRate int) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// PerSecond returns a bucket allowing rps requests each second, or nil when
// rps is not positive.
func PerSecond(rps int) *TokenBucket {
	if rps <= 0 {
		return nil
	}
	return NewTokenBucket(rps, rps)
}

func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)
	add := int(elapsed.Seconds()) * tb.refillRate
	if add > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+add)
		tb.lastRefill = now
	}
}

// Allow takes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Remaining reports the tokens currently in the bucket.
func (tb *TokenBucket) Remaining() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.refill()
	return tb.tokens
}

// Wait blocks until a token is taken or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		if tb.Allow() {
			return nil
		}

		wait := time.Second
		if tb.refillRate > 0 {
			wait = time.Second / time.Duration(tb.refillRate)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
