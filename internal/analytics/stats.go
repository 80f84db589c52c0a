// Package analytics derives market statistics, technical indicators, and
// power-law trend overlays from an in-memory price series. Every computation
// here is a pure function over its input; callers may invoke them
// concurrently without coordination.
package analytics

import (
	"math"

	"kaspalytics/internal/domain"
)

const (
	stepsPerDay = 24
	steps7d     = 7 * stepsPerDay
	steps30d    = 30 * stepsPerDay
)

// ComputeMarketStats derives a MarketStats snapshot from a non-empty series.
// When the series is shorter than a requested lookback horizon the earliest
// point substitutes for the reference; a zero reference price reports a 0%
// change rather than failing.
func ComputeMarketStats(series domain.Series) (domain.MarketStats, error) {
	if len(series) == 0 {
		return domain.MarketStats{}, domain.ErrInsufficientData
	}

	current := series[len(series)-1].Price

	stats := domain.MarketStats{
		CurrentPrice:   current,
		PriceChange24h: pctChange(current, referencePrice(series, stepsPerDay)),
		PriceChange7d:  pctChange(current, referencePrice(series, steps7d)),
		PriceChange30d: pctChange(current, referencePrice(series, steps30d)),
		MarketCap:      current * domain.CirculatingSupply,
	}

	day := series.Tail(stepsPerDay)
	high := day[0].High
	low := day[0].Low
	for _, p := range day {
		stats.Volume24h += p.Volume
		high = math.Max(high, p.High)
		low = math.Min(low, p.Low)
	}
	stats.High24h = high
	stats.Low24h = low

	week := series.Tail(steps7d)
	var weekVolume float64
	for _, p := range week {
		weekVolume += p.Volume
	}
	stats.Volume7dAvg = weekVolume / float64(len(week))

	return stats, nil
}

// referencePrice returns the price lookback steps before the last point, or
// the earliest available price when the series is too short.
func referencePrice(series domain.Series, lookback int) float64 {
	if len(series) > lookback {
		return series[len(series)-1-lookback].Price
	}
	return series[0].Price
}

func pctChange(current, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return (current - reference) / reference * 100
}
