package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// CacheWarmer periodically refreshes the cached series, stats, and network
// snapshot so that the common lookbacks are always served hot.
type CacheWarmer struct {
	tracer    trace.Tracer
	warmer    CacheRefresher
	interval  time.Duration
	lookbacks []int
}

type CacheRefresher interface {
	WarmCaches(ctx context.Context, lookbacks []int) error
}

func NewCacheWarmer(tracer trace.Tracer, warmer CacheRefresher, intervalSecs int, lookbacks []int) *CacheWarmer {
	return &CacheWarmer{
		tracer:    tracer,
		warmer:    warmer,
		interval:  time.Duration(intervalSecs) * time.Second,
		lookbacks: lookbacks,
	}
}

// Start warms the caches immediately and then on every tick. Blocks until
// ctx is cancelled.
func (w *CacheWarmer) Start(ctx context.Context) {
	log.Println("Cache warmer starting...")

	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cache warmer stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CacheWarmer) warm(ctx context.Context) {
	ctx, span := w.tracer.Start(ctx, "job.cache-warm")
	defer span.End()

	if err := w.warmer.WarmCaches(ctx, w.lookbacks); err != nil {
		log.Printf("cache warm error: %v", err)
	}
}
