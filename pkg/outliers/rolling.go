package outliers

import (
	"math"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// Defaults for the context-aware detectors.
const (
	DefaultRollingWindow       = 10
	DefaultRollingZThreshold   = 3.0
	DefaultSpikeThreshold      = 2.0
	DefaultLevelShiftThreshold = 3.0
)

// DetectTimeSeriesAnomalies scores each point against the mean and spread of
// the window immediately preceding it. Local scoring catches anomalies that
// whole-series statistics absorb, such as a spike inside a long drift.
// Windows with no spread are skipped.
func DetectTimeSeriesAnomalies(data []float64, window int, threshold float64) []models.OutlierResult {
	if window < 2 {
		window = DefaultRollingWindow
	}
	if threshold <= 0 {
		threshold = DefaultRollingZThreshold
	}

	var results []models.OutlierResult
	for i := window; i < len(data); i++ {
		prior := data[i-window : i]
		sd := stats.StdDev(prior)
		if sd == 0 {
			continue
		}
		z := (data[i] - stats.Mean(prior)) / sd
		if math.Abs(z) > threshold {
			results = append(results, models.OutlierResult{
				Index:     i,
				Value:     data[i],
				Score:     math.Abs(z),
				Method:    models.MethodRollingZScore,
				Direction: directionOf(z),
				Threshold: threshold,
			})
		}
	}
	sortByScore(results)
	return results
}

// DetectSpikes flags points that deviate from the trailing-window mean by
// more than threshold times the trailing-window volatility.
func DetectSpikes(data []float64, window int, threshold float64) []models.OutlierResult {
	if window < 2 {
		window = DefaultRollingWindow
	}
	if threshold <= 0 {
		threshold = DefaultSpikeThreshold
	}

	var results []models.OutlierResult
	for i := window; i < len(data); i++ {
		prior := data[i-window : i]
		baseline := stats.Mean(prior)
		vol := stats.StdDev(prior)
		if vol == 0 {
			continue
		}
		deviation := (data[i] - baseline) / vol
		if math.Abs(deviation) > threshold {
			results = append(results, models.OutlierResult{
				Index:     i,
				Value:     data[i],
				Score:     math.Abs(deviation),
				Method:    models.MethodSpike,
				Direction: directionOf(deviation),
				Threshold: threshold,
			})
		}
	}
	sortByScore(results)
	return results
}

// DetectLevelShifts compares the means of adjacent before/after windows at
// every interior point with a pooled-standard-deviation z-test, flagging
// sustained changes in level rather than transient spikes.
func DetectLevelShifts(data []float64, window int, threshold float64) []models.OutlierResult {
	if window < 2 {
		window = DefaultRollingWindow
	}
	if threshold <= 0 {
		threshold = DefaultLevelShiftThreshold
	}

	var results []models.OutlierResult
	for i := window; i+window <= len(data); i++ {
		before := data[i-window : i]
		after := data[i : i+window]
		pooled := math.Sqrt((stats.Variance(before) + stats.Variance(after)) / 2)
		if pooled == 0 {
			continue
		}
		diff := stats.Mean(after) - stats.Mean(before)
		z := diff / (pooled * math.Sqrt(2/float64(window)))
		if math.Abs(z) > threshold {
			results = append(results, models.OutlierResult{
				Index:     i,
				Value:     data[i],
				Score:     math.Abs(z),
				Method:    models.MethodLevelShift,
				Direction: directionOf(z),
				Threshold: threshold,
			})
		}
	}
	sortByScore(results)
	return results
}
