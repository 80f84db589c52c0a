package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"kaspalytics/internal/domain"
)

func makeSeries(n int, price func(i int) float64) domain.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(domain.Series, n)
	for i := range series {
		p := price(i)
		series[i] = domain.PricePoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Price:     p,
			Open:      p,
			High:      p * 1.01,
			Low:       p * 0.99,
			Close:     p,
			Volume:    1000,
		}
	}
	return series
}

func risingSeries(n int, from, to float64) domain.Series {
	step := (to - from) / float64(n-1)
	return makeSeries(n, func(i int) float64 { return from + step*float64(i) })
}

func TestComputeMarketStatsEmptySeries(t *testing.T) {
	t.Parallel()

	if _, err := ComputeMarketStats(nil); !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestComputeMarketStatsDegradedReference(t *testing.T) {
	t.Parallel()

	// 20 points: shorter than every lookback horizon, so the first point is
	// the reference for all of them.
	series := risingSeries(20, 0.01, 0.02)
	stats, err := ComputeMarketStats(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (0.02 - 0.01) / 0.01 * 100
	if math.Abs(stats.PriceChange24h-want) > 1e-9 {
		t.Fatalf("expected 24h change %.4f, got %.4f", want, stats.PriceChange24h)
	}
	if stats.PriceChange24h != stats.PriceChange7d || stats.PriceChange7d != stats.PriceChange30d {
		t.Fatalf("all horizons should share the degraded reference: %+v", stats)
	}
}

func TestComputeMarketStatsFullHistory(t *testing.T) {
	t.Parallel()

	series := risingSeries(800, 0.01, 0.05)
	stats, err := ComputeMarketStats(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.CurrentPrice != series[len(series)-1].Price {
		t.Fatalf("current price mismatch: %f", stats.CurrentPrice)
	}
	if stats.PriceChange24h <= 0 || stats.PriceChange7d <= 0 || stats.PriceChange30d <= 0 {
		t.Fatalf("rising series must report positive changes: %+v", stats)
	}
	if stats.PriceChange24h >= stats.PriceChange7d || stats.PriceChange7d >= stats.PriceChange30d {
		t.Fatalf("longer horizons should show larger gains on a rising series: %+v", stats)
	}
	if stats.MarketCap != stats.CurrentPrice*domain.CirculatingSupply {
		t.Fatalf("market cap mismatch: %f", stats.MarketCap)
	}

	var wantVolume float64
	for _, p := range series[len(series)-24:] {
		wantVolume += p.Volume
	}
	if math.Abs(stats.Volume24h-wantVolume) > 1e-9 {
		t.Fatalf("expected 24h volume %f, got %f", wantVolume, stats.Volume24h)
	}
}

func TestComputeMarketStatsZeroReference(t *testing.T) {
	t.Parallel()

	series := makeSeries(10, func(i int) float64 {
		if i == 0 {
			return 0
		}
		return 0.02
	})
	stats, err := ComputeMarketStats(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.PriceChange24h != 0 {
		t.Fatalf("zero reference should report 0%% change, got %f", stats.PriceChange24h)
	}
}

func TestComputeIndicatorsShortSeries(t *testing.T) {
	t.Parallel()

	series := risingSeries(49, 0.01, 0.02)
	if _, err := ComputeIndicators(series); !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 49 points, got %v", err)
	}
}

func TestComputeIndicatorsSMA50FirstDefinedIndex(t *testing.T) {
	t.Parallel()

	series := risingSeries(60, 0.01, 0.02)
	set, err := ComputeIndicators(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 49; i++ {
		if !math.IsNaN(set.SMA50[i]) {
			t.Fatalf("SMA-50 should be undefined at %d, got %f", i, set.SMA50[i])
		}
	}
	if math.IsNaN(set.SMA50[49]) {
		t.Fatal("SMA-50 should be defined at index 49")
	}
}

func TestComputeIndicatorsRisingSeries(t *testing.T) {
	t.Parallel()

	series := risingSeries(200, 0.01, 0.05)
	set, err := ComputeIndicators(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Current.RSI < 99 {
		t.Fatalf("monotonic rise should drive RSI near 100, got %f", set.Current.RSI)
	}

	current := series[len(series)-1].Price
	for i := 19; i < len(series); i++ {
		if !math.IsNaN(set.SMA20[i]) && set.SMA20[i] >= current {
			t.Fatalf("SMA-20 at %d (%f) should trail the final price %f", i, set.SMA20[i], current)
		}
	}

	for i := 14; i < len(set.RSI); i++ {
		if set.RSI[i] < 0 || set.RSI[i] > 100 {
			t.Fatalf("RSI out of range at %d: %f", i, set.RSI[i])
		}
	}

	for i := range set.MACDHistogram {
		want := set.MACDLine[i] - set.MACDSignal[i]
		if math.Abs(set.MACDHistogram[i]-want) > 1e-12 {
			t.Fatalf("histogram mismatch at %d", i)
		}
	}
}

func TestComputePowerLawInsufficientData(t *testing.T) {
	t.Parallel()

	series := risingSeries(40, 0.01, 0.02)
	if _, err := ComputePowerLaw(series); !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for 40 points, got %v", err)
	}
}

func TestComputePowerLawFiltersNonPositivePrices(t *testing.T) {
	t.Parallel()

	// 120 raw points but only 40 positive: below the filtered floor.
	series := makeSeries(120, func(i int) float64 {
		if i < 80 {
			return 0
		}
		return 0.02
	})
	if _, err := ComputePowerLaw(series); !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData after filtering, got %v", err)
	}
}

func TestComputePowerLawDeviations(t *testing.T) {
	t.Parallel()

	series := risingSeries(200, 0.01, 0.05)
	result, err := ComputePowerLaw(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Fit.DataPoints != 200 {
		t.Fatalf("expected 200 data points, got %d", result.Fit.DataPoints)
	}
	if len(result.Base.Values) != 200 {
		t.Fatalf("curve length mismatch: %d", len(result.Base.Values))
	}

	current := series[len(series)-1].Price
	for _, curve := range []domain.PowerLawCurve{result.Conservative, result.Base, result.Aggressive} {
		last := curve.Values[len(curve.Values)-1]
		want := (current/last - 1) * 100
		if math.Abs(curve.Deviation-want) > 1e-9 {
			t.Fatalf("%s deviation mismatch: got %f want %f", curve.Name, curve.Deviation, want)
		}
	}

	if result.Fit.RSquared < 0 || result.Fit.RSquared > 1 {
		t.Fatalf("R² out of range: %f", result.Fit.RSquared)
	}
	if result.Fit.Correlation <= 0 {
		t.Fatalf("rising series should correlate positively, got %f", result.Fit.Correlation)
	}
}

// The fit statistics measure the raw series' log-log relation, so altering
// the scenario curve constants must not move R².
func TestComputePowerLawFitIndependentOfCurves(t *testing.T) {
	series := risingSeries(200, 0.01, 0.05)

	before, err := ComputePowerLaw(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved := baseParams
	defer func() { baseParams = saved }()
	baseParams = powerLawParams{a: 99, b: 0.5, c: 42}

	after, err := ComputePowerLaw(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if before.Fit.RSquared != after.Fit.RSquared || before.Fit.Correlation != after.Fit.Correlation {
		t.Fatalf("fit statistics moved with curve parameters: %+v vs %+v", before.Fit, after.Fit)
	}
	if before.Base.Deviation == after.Base.Deviation {
		t.Fatal("sanity check failed: base curve deviation should have changed")
	}
}
