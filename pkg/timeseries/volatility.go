package timeseries

import (
	"math"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// RollingVolatility computes the population standard deviation over a
// sliding window. Like SMA, an oversized window degrades to one aggregate.
func RollingVolatility(data []float64, window int) []float64 {
	return rollingApply(data, window, stats.StdDev)
}

// RollingCV computes stdDev/|mean| per window, 0 where the window mean is 0.
func RollingCV(data []float64, window int) []float64 {
	return rollingApply(data, window, func(w []float64) float64 {
		mean := stats.Mean(w)
		if mean == 0 {
			return 0
		}
		return stats.StdDev(w) / math.Abs(mean)
	})
}

// AverageAbsoluteChange smooths the absolute first differences with an SMA.
func AverageAbsoluteChange(data []float64, window int) []float64 {
	diffs := Velocity(data)
	for i, d := range diffs {
		diffs[i] = math.Abs(d)
	}
	return SMA(diffs, window)
}

func rollingApply(data []float64, window int, fn func([]float64) float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	if window < 1 {
		window = 1
	}
	if window > len(data) {
		return []float64{fn(data)}
	}
	out := make([]float64, 0, len(data)-window+1)
	for i := 0; i+window <= len(data); i++ {
		out = append(out, fn(data[i:i+window]))
	}
	return out
}
