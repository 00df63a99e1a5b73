package timeseries

import (
	"math"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// Normalized-slope threshold separating up/down from flat: a trend must move
// the series by more than 1% of its mean level per observation.
const trendSlopeThreshold = 0.01

// Trends computed from fewer points than this are confidence-penalized
// proportionally, regardless of fit quality.
const trendFullConfidenceCount = 30

// DetectTrend regresses the series against its index and classifies the
// direction. Strength is the regression r-squared; confidence additionally
// penalizes short series. Fewer than 2 points yields a flat zero result.
func DetectTrend(data []float64) models.TrendResult {
	n := len(data)
	if n < 2 {
		return models.TrendResult{Direction: models.TrendFlat}
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	fit := stats.LinearRegression(xs, data)

	normSlope := fit.Slope
	if mean := stats.Mean(data); mean != 0 {
		normSlope = fit.Slope / math.Abs(mean)
	}

	direction := models.TrendFlat
	if normSlope > trendSlopeThreshold {
		direction = models.TrendUp
	} else if normSlope < -trendSlopeThreshold {
		direction = models.TrendDown
	}

	strength := clamp01(fit.R2)
	confidence := clamp01(fit.R2 * math.Min(float64(n)/trendFullConfidenceCount, 1))

	return models.TrendResult{
		Direction:  direction,
		Slope:      fit.Slope,
		Strength:   strength,
		Confidence: confidence,
	}
}

// DetectTrendChanges slides two adjacent windows across the series and
// reports each index where the trend direction flips and both sub-trends are
// well established (strength > 0.3).
func DetectTrendChanges(data []float64, window int) []int {
	if window < 2 {
		window = 2
	}
	var changes []int
	for i := window; i+window <= len(data); i++ {
		left := DetectTrend(data[i-window : i])
		right := DetectTrend(data[i : i+window])
		if left.Direction != right.Direction && left.Strength > 0.3 && right.Strength > 0.3 {
			changes = append(changes, i)
		}
	}
	return changes
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
