package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"

	"kaspalytics/internal/analytics"
	"kaspalytics/internal/domain"
	"kaspalytics/internal/entitlement"
)

// Cache TTLs per payload kind. The provider is pure given a lookback, so a
// TTL is purely a freshness knob; correctness never depends on the cache.
const (
	seriesCacheTTL     = 5 * time.Minute
	statsCacheTTL      = 5 * time.Minute
	indicatorsCacheTTL = 30 * time.Minute
	powerLawCacheTTL   = time.Hour
	networkCacheTTL    = 10 * time.Minute
)

// MarketDataProvider is the feed seam. The synthetic provider fills it today;
// a real historical-data client would replace it without touching callers.
type MarketDataProvider interface {
	FetchSeries(ctx context.Context, lookbackDays int) (domain.Series, error)
	FetchNetworkMetrics(ctx context.Context) (domain.NetworkMetrics, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// MarketService orchestrates series generation, derived analytics, and
// read-through caching, applying per-tier history windows to everything it
// hands out.
type MarketService struct {
	tracer   trace.Tracer
	provider MarketDataProvider
	redis    RedisClient
}

func NewMarketService(tracer trace.Tracer, provider MarketDataProvider, redisClient RedisClient) *MarketService {
	return &MarketService{
		tracer:   tracer,
		provider: provider,
		redis:    redisClient,
	}
}

// GetSeries returns the hourly series for a lookback window, truncated to
// the tier's visible history.
func (s *MarketService) GetSeries(ctx context.Context, lookbackDays int, tier domain.Tier) (domain.Series, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-series")
	defer span.End()

	series, err := s.fullSeries(ctx, lookbackDays)
	if err != nil {
		return nil, err
	}
	return visibleSeries(series, tier), nil
}

// GetMarketStats returns the stats snapshot over the tier-visible series.
func (s *MarketService) GetMarketStats(ctx context.Context, lookbackDays int, tier domain.Tier) (domain.MarketStats, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-market-stats")
	defer span.End()

	key := fmt.Sprintf("stats:%d:%s", lookbackDays, tier)
	var cached domain.MarketStats
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	series, err := s.GetSeries(ctx, lookbackDays, tier)
	if err != nil {
		return domain.MarketStats{}, err
	}
	stats, err := analytics.ComputeMarketStats(series)
	if err != nil {
		return domain.MarketStats{}, err
	}

	s.writeCache(ctx, key, stats, statsCacheTTL)
	return stats, nil
}

// GetIndicators returns the indicator set over the tier-visible series.
func (s *MarketService) GetIndicators(ctx context.Context, lookbackDays int, tier domain.Tier) (domain.IndicatorSet, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-indicators")
	defer span.End()

	key := fmt.Sprintf("indicators:%d:%s", lookbackDays, tier)
	var cached domain.IndicatorSet
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	series, err := s.GetSeries(ctx, lookbackDays, tier)
	if err != nil {
		return domain.IndicatorSet{}, err
	}
	set, err := analytics.ComputeIndicators(series)
	if err != nil {
		return domain.IndicatorSet{}, err
	}

	s.writeCache(ctx, key, set, indicatorsCacheTTL)
	return set, nil
}

// GetPowerLaw returns the scenario overlays and fit statistics over the
// tier-visible series.
func (s *MarketService) GetPowerLaw(ctx context.Context, lookbackDays int, tier domain.Tier) (domain.PowerLawResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-power-law")
	defer span.End()

	key := fmt.Sprintf("powerlaw:%d:%s", lookbackDays, tier)
	var cached domain.PowerLawResult
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	series, err := s.GetSeries(ctx, lookbackDays, tier)
	if err != nil {
		return domain.PowerLawResult{}, err
	}
	result, err := analytics.ComputePowerLaw(series)
	if err != nil {
		return domain.PowerLawResult{}, err
	}

	s.writeCache(ctx, key, result, powerLawCacheTTL)
	return result, nil
}

// GetNetworkMetrics returns the chain-health snapshot.
func (s *MarketService) GetNetworkMetrics(ctx context.Context) (domain.NetworkMetrics, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.get-network-metrics")
	defer span.End()

	const key = "network:metrics"
	var cached domain.NetworkMetrics
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	metrics, err := s.provider.FetchNetworkMetrics(ctx)
	if err != nil {
		return domain.NetworkMetrics{}, err
	}

	s.writeCache(ctx, key, metrics, networkCacheTTL)
	return metrics, nil
}

// WarmCaches refreshes the cached series and stats for the given lookbacks,
// plus the network snapshot. Used by the background warmer.
func (s *MarketService) WarmCaches(ctx context.Context, lookbacks []int) error {
	ctx, span := s.tracer.Start(ctx, "market-service.warm-caches")
	defer span.End()

	for _, days := range lookbacks {
		if _, err := s.fullSeries(ctx, days); err != nil {
			return fmt.Errorf("warm series for %dd: %w", days, err)
		}
		for _, tier := range domain.Tiers {
			if _, err := s.GetMarketStats(ctx, days, tier); err != nil {
				return fmt.Errorf("warm stats for %dd/%s: %w", days, tier, err)
			}
		}
	}
	if _, err := s.GetNetworkMetrics(ctx); err != nil {
		return fmt.Errorf("warm network metrics: %w", err)
	}
	return nil
}

// fullSeries fetches the untruncated series for a lookback, through the
// cache. The provider is deterministic per lookback, so the key carries the
// length alone.
func (s *MarketService) fullSeries(ctx context.Context, lookbackDays int) (domain.Series, error) {
	key := fmt.Sprintf("series:%d", lookbackDays)
	var cached domain.Series
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	series, err := s.provider.FetchSeries(ctx, lookbackDays)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, key, series, seriesCacheTTL)
	return series, nil
}

func visibleSeries(series domain.Series, tier domain.Tier) domain.Series {
	window := entitlement.HistoryWindow(tier)
	if window == 0 {
		return series
	}
	return series.Tail(window)
}

func (s *MarketService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("redis cache read error for %s: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("redis cache decode error for %s: %v", key, err)
		return false
	}
	return true
}

func (s *MarketService) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache encode error for %s: %v", key, err)
		return
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("redis cache write error for %s: %v", key, err)
	}
}
