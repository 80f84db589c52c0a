package handler

import (
	"testing"
	"time"

	"kaspalytics/internal/domain"
)

func TestTierLimiterBudget(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewTierLimiter()
	l.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if !l.Allow(domain.TierFree, "alice", 5) {
			t.Fatalf("request %d should fit the budget", i+1)
		}
	}
	if l.Allow(domain.TierFree, "alice", 5) {
		t.Error("sixth request should be rejected")
	}
}

func TestTierLimiterRefill(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewTierLimiter()
	l.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		l.Allow(domain.TierFree, "bob", 5)
	}
	if l.Allow(domain.TierFree, "bob", 5) {
		t.Fatal("bucket should be empty")
	}

	// A minute later the bucket is full again, but never above its cap.
	now = now.Add(time.Minute)
	for i := 0; i < 5; i++ {
		if !l.Allow(domain.TierFree, "bob", 5) {
			t.Fatalf("request %d after refill should be allowed", i+1)
		}
	}
	if l.Allow(domain.TierFree, "bob", 5) {
		t.Error("refill should not exceed the budget")
	}
}

func TestTierLimiterIsolatesCallers(t *testing.T) {
	t.Parallel()

	l := NewTierLimiter()
	for i := 0; i < 5; i++ {
		l.Allow(domain.TierFree, "carol", 5)
	}
	if !l.Allow(domain.TierFree, "dave", 5) {
		t.Error("one caller draining their bucket should not affect another")
	}
}

func TestTierLimiterZeroBudgetAllowsAll(t *testing.T) {
	t.Parallel()

	l := NewTierLimiter()
	for i := 0; i < 100; i++ {
		if !l.Allow(domain.TierPro, "erin", 0) {
			t.Fatal("a zero budget disables limiting")
		}
	}
}
