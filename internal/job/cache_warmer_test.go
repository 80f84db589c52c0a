package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestNewCacheWarmerInterval(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	warmer := NewCacheWarmer(tracer, &stubRefresher{}, 2, []int{1, 7})
	if warmer.interval != 2*time.Second {
		t.Fatalf("expected 2s interval, got %v", warmer.interval)
	}
}

func TestCacheWarmerStart(t *testing.T) {
	t.Parallel()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubRefresher{}
	warmer := NewCacheWarmer(tracer, stub, 1, []int{1, 30})

	ctx, cancel := context.WithCancel(context.Background())
	go warmer.Start(ctx)

	eventually(t, func() bool { return stub.calls() > 0 })
	cancel()

	if got := stub.lastLookbacks(); len(got) != 2 || got[0] != 1 || got[1] != 30 {
		t.Fatalf("unexpected lookbacks: %+v", got)
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met")
}

type stubRefresher struct {
	mu        sync.Mutex
	warmCalls int
	lookbacks []int
}

func (s *stubRefresher) WarmCaches(ctx context.Context, lookbacks []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warmCalls++
	s.lookbacks = append([]int(nil), lookbacks...)
	return nil
}

func (s *stubRefresher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.warmCalls
}

func (s *stubRefresher) lastLookbacks() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookbacks
}
