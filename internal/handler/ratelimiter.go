package handler

import (
	"sync"
	"time"

	"kaspalytics/internal/domain"
)

// TierLimiter keeps a token bucket per caller, sized by the caller's tier.
// Buckets refill continuously at the tier's per-minute budget.
type TierLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	tokens     float64
	maxTokens  float64
	lastRefill time.Time
}

func NewTierLimiter() *TierLimiter {
	return &TierLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consumes one token from the caller's bucket, reporting whether the
// request fits the budget. It never blocks; HTTP callers get a 429 instead
// of queueing.
func (l *TierLimiter) Allow(tier domain.Tier, key string, perMinute int) bool {
	if perMinute <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := string(tier) + ":" + key
	now := l.now()

	b, ok := l.buckets[id]
	if !ok {
		b = &bucket{
			tokens:     float64(perMinute),
			maxTokens:  float64(perMinute),
			lastRefill: now,
		}
		l.buckets[id] = b
	}

	refill := now.Sub(b.lastRefill).Minutes() * float64(perMinute)
	if refill > 0 {
		b.tokens = min(b.tokens+refill, b.maxTokens)
		b.lastRefill = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
