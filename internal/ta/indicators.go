// Package ta implements the rolling technical-indicator primitives used by
// the analytics layer. All series functions return slices parallel to the
// input; positions where a rolling window is not yet full hold NaN.
package ta

import "math"

// rsiEpsilon keeps the RSI denominator positive when a window has no losses.
const rsiEpsilon = 1e-10

func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	// Population variance, matching the band width the product always shipped.
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMASeries computes the trailing arithmetic mean over period points.
// The first period-1 entries are NaN.
func SMASeries(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMASeries computes an exponential moving average with alpha = 2/(span+1),
// seeded by the first value rather than zero.
func EMASeries(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if span <= 1 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// RSISeries computes the relative strength index over trailing rolling means
// of gains and losses. A small epsilon in the denominator keeps an all-gain
// window at RSI ~100 instead of dividing by zero. The first period entries
// are NaN (one delta is consumed before the first window fills).
func RSISeries(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gains[i-1] = math.Max(delta, 0)
		losses[i-1] = math.Max(-delta, 0)
	}

	avgGains := SMASeries(gains, period)
	avgLosses := SMASeries(losses, period)
	for i := period - 1; i < len(gains); i++ {
		rs := avgGains[i] / (avgLosses[i] + rsiEpsilon)
		out[i+1] = 100 - (100 / (1 + rs))
	}
	return out
}

// MACDSeries returns the MACD line (fast EMA minus slow EMA) and its signal
// line (an EMA of the MACD line).
func MACDSeries(values []float64, fast, slow, signal int) ([]float64, []float64) {
	if len(values) == 0 {
		return nil, nil
	}
	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)
	macdLine := make([]float64, len(values))
	for i := range values {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := EMASeries(macdLine, signal)
	return macdLine, signalLine
}

// BollingerSeries returns middle, upper, and lower bands: a period SMA plus
// and minus stdDevs trailing population standard deviations.
func BollingerSeries(values []float64, period int, stdDevs float64) ([]float64, []float64, []float64) {
	middle := nanSlice(len(values))
	upper := nanSlice(len(values))
	lower := nanSlice(len(values))
	if period <= 0 {
		return middle, upper, lower
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]
		mean, std := MeanStd(window)
		middle[i] = mean
		upper[i] = mean + stdDevs*std
		lower[i] = mean - stdDevs*std
	}
	return middle, upper, lower
}
