package analytics

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"kaspalytics/internal/domain"
)

// Scenario curve parameters for a*(days/365+0.1)^b + c. These are hand-tuned
// growth overlays, not fitted coefficients.
type powerLawParams struct {
	a, b, c float64
}

var (
	conservativeParams = powerLawParams{a: 0.01, b: 1.2, c: 0.008}
	baseParams         = powerLawParams{a: 0.015, b: 1.5, c: 0.01}
	aggressiveParams   = powerLawParams{a: 0.02, b: 1.8, c: 0.012}
)

const (
	// minPowerLawRaw is the minimum raw series length; minPowerLawFiltered
	// applies after non-positive prices are discarded.
	minPowerLawRaw      = 100
	minPowerLawFiltered = 50
)

// ComputePowerLaw evaluates the three scenario overlays across the series and
// reports each curve's deviation from the current price, together with the
// R² of a generic log(price) vs log(days+1) linear relation.
//
// The R² is intentionally not a goodness-of-fit of the three overlays. The
// overlays are fixed scenario bands; the fit statistic measures how power-law
// shaped the raw series itself is. The two outputs answer different questions
// and are kept independent.
func ComputePowerLaw(series domain.Series) (domain.PowerLawResult, error) {
	if len(series) < minPowerLawRaw {
		return domain.PowerLawResult{}, domain.ErrInsufficientData
	}

	start := series[0].Timestamp
	timestamps := make([]time.Time, 0, len(series))
	days := make([]float64, 0, len(series))
	prices := make([]float64, 0, len(series))
	for _, p := range series {
		if p.Price <= 0 {
			continue
		}
		timestamps = append(timestamps, p.Timestamp)
		days = append(days, p.Timestamp.Sub(start).Hours()/24)
		prices = append(prices, p.Price)
	}
	if len(prices) < minPowerLawFiltered {
		return domain.PowerLawResult{}, domain.ErrInsufficientData
	}

	currentPrice := prices[len(prices)-1]

	result := domain.PowerLawResult{
		Timestamps:   timestamps,
		ActualPrices: prices,
		Conservative: evalCurve("conservative", conservativeParams, days, currentPrice),
		Base:         evalCurve("base", baseParams, days, currentPrice),
		Aggressive:   evalCurve("aggressive", aggressiveParams, days, currentPrice),
	}

	logPrices := make([]float64, len(prices))
	logDays := make([]float64, len(days))
	for i := range prices {
		logPrices[i] = math.Log(prices[i])
		logDays[i] = math.Log(days[i] + 1)
	}
	correlation := stat.Correlation(logPrices, logDays, nil)
	result.Fit = domain.PowerLawFit{
		RSquared:    correlation * correlation,
		Correlation: correlation,
		DataPoints:  len(prices),
	}

	return result, nil
}

func evalCurve(name string, p powerLawParams, days []float64, currentPrice float64) domain.PowerLawCurve {
	values := make([]float64, len(days))
	for i, d := range days {
		values[i] = p.a*math.Pow(d/365+0.1, p.b) + p.c
	}
	return domain.PowerLawCurve{
		Name:      name,
		Values:    values,
		Deviation: (currentPrice/values[len(values)-1] - 1) * 100,
	}
}
