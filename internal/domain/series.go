package domain

import "time"

// CirculatingSupply is the approximate circulating supply used for market cap.
// Hard-coded rather than fetched; a known fidelity limitation of the feed.
const CirculatingSupply = 18_500_000_000

// PricePoint is a single hourly observation. Immutable once generated.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
}

// Series is an ordered hourly price history with strictly increasing
// timestamps and no gaps. The slice is owned by the caller that obtained it.
type Series []PricePoint

// Prices returns the price column of the series.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Price
	}
	return out
}

// Tail returns the last n points, or the whole series if it is shorter.
func (s Series) Tail(n int) Series {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// MarketStats is a snapshot derived from exactly one Series at one instant.
// All percentage fields are relative to the last element of the series.
type MarketStats struct {
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	PriceChange7d  float64 `json:"price_change_7d"`
	PriceChange30d float64 `json:"price_change_30d"`
	Volume24h      float64 `json:"volume_24h"`
	Volume7dAvg    float64 `json:"volume_7d_avg"`
	High24h        float64 `json:"high_24h"`
	Low24h         float64 `json:"low_24h"`
	MarketCap      float64 `json:"market_cap"`
}

// IndicatorSet holds full indicator series parallel to the input series.
// Leading entries inside a rolling window are NaN ("no value"), never zero.
type IndicatorSet struct {
	SMA20         FloatSeries `json:"sma_20"`
	SMA50         FloatSeries `json:"sma_50"`
	EMA12         FloatSeries `json:"ema_12"`
	EMA26         FloatSeries `json:"ema_26"`
	MACDLine      FloatSeries `json:"macd_line"`
	MACDSignal    FloatSeries `json:"macd_signal"`
	MACDHistogram FloatSeries `json:"macd_histogram"`
	RSI           FloatSeries `json:"rsi"`
	BBUpper       FloatSeries `json:"bb_upper"`
	BBMiddle      FloatSeries `json:"bb_middle"`
	BBLower       FloatSeries `json:"bb_lower"`

	Current IndicatorSnapshot `json:"current_values"`
}

// IndicatorSnapshot holds the last value of the headline indicators.
// BBPosition is the fractional position of the current price between the
// lower and upper Bollinger band. It is reported unclamped: values outside
// [0,1] mean the price closed outside the bands, which charting callers
// want to see.
type IndicatorSnapshot struct {
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	BBPosition float64 `json:"bb_position"`
}

// PowerLawCurve is one fixed-parameter scenario overlay of the form
// a*(days/365+0.1)^b + c evaluated at every point of the input series.
type PowerLawCurve struct {
	Name      string    `json:"name"`
	Values    []float64 `json:"values"`
	Deviation float64   `json:"deviation_pct"`
}

// PowerLawFit is the goodness-of-fit of a generic log(price) vs log(days+1)
// linear relation. It is deliberately independent of the three scenario
// curves: the curves are hand-tuned overlays, not the fitted model.
type PowerLawFit struct {
	RSquared    float64 `json:"r_squared"`
	Correlation float64 `json:"correlation"`
	DataPoints  int     `json:"data_points"`
}

// PowerLawResult pairs the scenario overlays with the generic fit statistics.
type PowerLawResult struct {
	Timestamps   []time.Time   `json:"timestamps"`
	ActualPrices []float64     `json:"actual_prices"`
	Conservative PowerLawCurve `json:"conservative"`
	Base         PowerLawCurve `json:"base"`
	Aggressive   PowerLawCurve `json:"aggressive"`
	Fit          PowerLawFit   `json:"statistics"`
}

// NetworkMetrics is a synthetic snapshot of chain health figures.
type NetworkMetrics struct {
	HashRate           float64   `json:"hash_rate"`
	Difficulty         float64   `json:"difficulty"`
	BlockTime          float64   `json:"block_time"`
	ActiveAddresses    int       `json:"active_addresses"`
	TransactionCount24 int       `json:"transaction_count_24h"`
	MempoolSize        int       `json:"mempool_size"`
	NetworkFeeAvg      float64   `json:"network_fee_avg"`
	CirculatingSupply  float64   `json:"circulating_supply"`
	LastUpdated        time.Time `json:"last_updated"`
}
