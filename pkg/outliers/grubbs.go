package outliers

import (
	"math"
	"sort"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// Grubbs' test needs an approximately normal sample of at least this size.
const grubbsMinSample = 7

// Two-sided critical values for Grubbs' statistic at alpha=0.05, keyed by
// sample size. Values between keys are linearly interpolated; samples larger
// than the last key use its value. The table is calibration data shared with
// collaborator fixtures and must not be regenerated.
var grubbsCriticalValues = []struct {
	n     int
	value float64
}{
	{7, 2.02},
	{8, 2.13},
	{9, 2.21},
	{10, 2.29},
	{12, 2.41},
	{15, 2.55},
	{20, 2.71},
	{25, 2.82},
	{30, 2.91},
	{40, 3.04},
	{50, 3.13},
	{60, 3.20},
	{80, 3.31},
	{100, 3.38},
}

func grubbsCritical(n int) float64 {
	table := grubbsCriticalValues
	if n <= table[0].n {
		return table[0].value
	}
	last := table[len(table)-1]
	if n >= last.n {
		return last.value
	}
	for i := 1; i < len(table); i++ {
		if n <= table[i].n {
			lo, hi := table[i-1], table[i]
			frac := float64(n-lo.n) / float64(hi.n-lo.n)
			return lo.value + frac*(hi.value-lo.value)
		}
	}
	return last.value
}

// DetectGrubbs runs the single-outlier Grubbs hypothesis test and reports
// the most extreme point when its statistic exceeds the critical value for
// the sample size. Fewer than 7 points, or a zero-spread sample, reports
// nothing.
func DetectGrubbs(data []float64) []models.OutlierResult {
	result, ok := grubbsTest(data)
	if !ok {
		return nil
	}
	return []models.OutlierResult{result}
}

// DetectGrubbsIterative repeatedly removes the most extreme point and
// re-tests, up to maxOutliers removals, mapping removed positions back to
// indices in the original series.
func DetectGrubbsIterative(data []float64, maxOutliers int) []models.OutlierResult {
	if maxOutliers <= 0 {
		maxOutliers = 1
	}
	working := make([]float64, len(data))
	copy(working, data)
	indices := make([]int, len(data))
	for i := range indices {
		indices[i] = i
	}

	var results []models.OutlierResult
	for len(results) < maxOutliers {
		res, ok := grubbsTest(working)
		if !ok {
			break
		}
		original := indices[res.Index]
		res.Index = original
		results = append(results, res)

		removed := indexOfMostExtreme(working)
		working = append(working[:removed], working[removed+1:]...)
		indices = append(indices[:removed], indices[removed+1:]...)
	}
	sortByScore(results)
	return results
}

// grubbsTest evaluates the statistic for the most extreme point. Grubbs'
// test uses the sample (n-1) standard deviation, unlike the population
// moments elsewhere in the engine.
func grubbsTest(data []float64) (models.OutlierResult, bool) {
	n := len(data)
	if n < grubbsMinSample {
		return models.OutlierResult{}, false
	}
	mean := stats.Mean(data)
	sumSq := 0.0
	for _, v := range data {
		d := v - mean
		sumSq += d * d
	}
	sd := math.Sqrt(sumSq / float64(n-1))
	if sd == 0 {
		return models.OutlierResult{}, false
	}

	idx := indexOfMostExtreme(data)
	g := math.Abs(data[idx]-mean) / sd
	critical := grubbsCritical(n)
	if g <= critical {
		return models.OutlierResult{}, false
	}
	return models.OutlierResult{
		Index:     idx,
		Value:     data[idx],
		Score:     g,
		Method:    models.MethodGrubbs,
		Direction: directionOf(data[idx] - mean),
		Threshold: critical,
	}, true
}

func indexOfMostExtreme(data []float64) int {
	mean := stats.Mean(data)
	idx, maxDev := 0, -1.0
	for i, v := range data {
		if dev := math.Abs(v - mean); dev > maxDev {
			maxDev = dev
			idx = i
		}
	}
	return idx
}

// DefaultIsolationThreshold is the gap-ratio above which a point counts as
// isolated.
const DefaultIsolationThreshold = 2.0

// DetectIsolation scores each point by the size of the value gap separating
// it from its nearest neighbor, relative to the average gap across the
// sorted series. It is a cheap heuristic in the spirit of isolation forests,
// not the real algorithm. Requires at least 10 points.
func DetectIsolation(data []float64, threshold float64) []models.OutlierResult {
	if threshold <= 0 {
		threshold = DefaultIsolationThreshold
	}
	n := len(data)
	if n < 10 {
		return nil
	}

	type indexedValue struct {
		value float64
		index int
	}
	sorted := make([]indexedValue, n)
	for i, v := range data {
		sorted[i] = indexedValue{value: v, index: i}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })

	totalGap := sorted[n-1].value - sorted[0].value
	if totalGap == 0 {
		return nil
	}
	avgGap := totalGap / float64(n-1)

	median := stats.Median(data)
	var results []models.OutlierResult
	for i, iv := range sorted {
		// Gap to the nearest neighbor in value space.
		nearest := math.Inf(1)
		if i > 0 {
			nearest = iv.value - sorted[i-1].value
		}
		if i < n-1 {
			if gap := sorted[i+1].value - iv.value; gap < nearest {
				nearest = gap
			}
		}
		score := nearest / avgGap
		if score > threshold {
			results = append(results, models.OutlierResult{
				Index:     iv.index,
				Value:     iv.value,
				Score:     score,
				Method:    models.MethodIsolation,
				Direction: directionOf(iv.value - median),
				Threshold: threshold,
			})
		}
	}
	sortByScore(results)
	return results
}
