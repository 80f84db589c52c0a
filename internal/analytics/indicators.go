package analytics

import (
	"kaspalytics/internal/domain"
	"kaspalytics/internal/ta"
)

const (
	smaShortPeriod = 20
	smaLongPeriod  = 50
	emaFastSpan    = 12
	emaSlowSpan    = 26
	macdSignalSpan = 9
	rsiPeriod      = 14
	bbPeriod       = 20
	bbStdDevs      = 2.0

	// minIndicatorPoints is the shortest series that yields a meaningful
	// SMA-50; shorter inputs are rejected outright.
	minIndicatorPoints = 50
)

// ComputeIndicators derives the full indicator set for a series of at least
// 50 points. Entries before a rolling window fills are NaN, never zero.
func ComputeIndicators(series domain.Series) (domain.IndicatorSet, error) {
	if len(series) < minIndicatorPoints {
		return domain.IndicatorSet{}, domain.ErrInsufficientData
	}

	prices := series.Prices()

	set := domain.IndicatorSet{
		SMA20: ta.SMASeries(prices, smaShortPeriod),
		SMA50: ta.SMASeries(prices, smaLongPeriod),
		EMA12: ta.EMASeries(prices, emaFastSpan),
		EMA26: ta.EMASeries(prices, emaSlowSpan),
		RSI:   ta.RSISeries(prices, rsiPeriod),
	}

	set.MACDLine, set.MACDSignal = ta.MACDSeries(prices, emaFastSpan, emaSlowSpan, macdSignalSpan)
	set.MACDHistogram = make([]float64, len(prices))
	for i := range prices {
		set.MACDHistogram[i] = set.MACDLine[i] - set.MACDSignal[i]
	}

	set.BBMiddle, set.BBUpper, set.BBLower = ta.BollingerSeries(prices, bbPeriod, bbStdDevs)

	last := len(prices) - 1
	set.Current = domain.IndicatorSnapshot{
		RSI:        set.RSI[last],
		MACD:       set.MACDLine[last],
		BBPosition: bbPosition(prices[last], set.BBLower[last], set.BBUpper[last]),
	}

	return set, nil
}

// bbPosition is the fractional position of price between the lower and upper
// band. Reported unclamped; a degenerate zero-width band maps to the middle.
func bbPosition(price, lower, upper float64) float64 {
	if upper == lower {
		return 0.5
	}
	return (price - lower) / (upper - lower)
}
