package timeseries

import (
	"math"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// CumSum returns the running sum of the series.
func CumSum(data []float64) []float64 {
	out := make([]float64, len(data))
	sum := 0.0
	for i, v := range data {
		sum += v
		out[i] = sum
	}
	return out
}

// CumProd returns the running product of the series.
func CumProd(data []float64) []float64 {
	out := make([]float64, len(data))
	prod := 1.0
	for i, v := range data {
		prod *= v
		out[i] = prod
	}
	return out
}

// Returns computes simple period-over-period returns. A zero previous value
// emits 0 for that period.
func Returns(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	out := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		prev := data[i-1]
		if prev == 0 {
			out[i-1] = 0
			continue
		}
		out[i-1] = (data[i] - prev) / prev
	}
	return out
}

// LogReturns computes ln(P_t / P_{t-1}). A zero or sign-flipping ratio emits
// 0 instead of a NaN that would poison downstream aggregates.
func LogReturns(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	out := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		prev := data[i-1]
		if prev == 0 {
			out[i-1] = 0
			continue
		}
		ratio := data[i] / prev
		if ratio <= 0 {
			out[i-1] = 0
			continue
		}
		out[i-1] = math.Log(ratio)
	}
	return out
}

// Seasonality scans in the summary cap the candidate period so dashboards do
// not pay for long ACF sweeps on big series.
const describeMaxSeasonalPeriod = 24

// DescribeTimeSeries computes the one-shot summary bundle for dashboards:
// endpoints, spread, trend, volatility (coefficient of variation), lag-1
// autocorrelation and the detected seasonal period. Empty input returns the
// neutral zero record.
func DescribeTimeSeries(data []float64) models.TimeSeriesSummary {
	n := len(data)
	if n == 0 {
		return models.TimeSeriesSummary{Trend: models.TrendResult{Direction: models.TrendFlat}}
	}
	maxPeriod := n / 2
	if maxPeriod > describeMaxSeasonalPeriod {
		maxPeriod = describeMaxSeasonalPeriod
	}
	return models.TimeSeriesSummary{
		Length:              n,
		First:               data[0],
		Last:                data[n-1],
		Min:                 stats.Min(data),
		Max:                 stats.Max(data),
		Mean:                stats.Mean(data),
		StdDev:              stats.StdDev(data),
		Trend:               DetectTrend(data),
		Volatility:          stats.CoefficientOfVariation(data),
		Lag1Autocorrelation: Autocorrelation(data, 1),
		SeasonalPeriod:      DetectSeasonality(data, maxPeriod),
	}
}
