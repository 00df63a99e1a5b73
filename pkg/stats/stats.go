// Package stats provides the core statistical primitives of the VeilVault
// analytics engine. Every function is a pure transform over caller-owned
// slices: inputs are never mutated, degenerate inputs degrade to documented
// defaults instead of NaN/Inf, and the only error surface is the paired-array
// length check in Correlation.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/errors"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

// ErrLengthMismatch is returned by Correlation when the paired slices differ
// in length. This is the one contract violation in the package: it indicates
// a caller bug, not a data-quality issue, so it is not silently truncated.
var ErrLengthMismatch = errors.NewValidationError(errors.CodeLengthMismatch, "paired series must have equal length")

// Sum returns the total of the series, 0 for empty input.
func Sum(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum
}

// Mean returns the arithmetic mean, 0 for empty input.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float64(len(data))
}

// Min returns the smallest value. Empty input returns +Inf so that callers
// can compare candidate values against the identity element.
func Min(data []float64) float64 {
	min := math.Inf(1)
	for _, v := range data {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value, -Inf for empty input.
func Max(data []float64) float64 {
	max := math.Inf(-1)
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	return max
}

// Range returns max-min, 0 for empty input.
func Range(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return Max(data) - Min(data)
}

// Median returns the middle order statistic, averaging the two middle
// elements for even lengths. The input slice is not reordered.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Mode returns every value tied for the highest frequency, in the order each
// was first encountered. When all values are unique the whole series comes
// back, since every value is then a mode.
func Mode(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	counts := make(map[float64]int, len(data))
	order := make([]float64, 0, len(data))
	for _, v := range data {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	maxFreq := 0
	for _, c := range counts {
		if c > maxFreq {
			maxFreq = c
		}
	}
	modes := make([]float64, 0, len(order))
	for _, v := range order {
		if counts[v] == maxFreq {
			modes = append(modes, v)
		}
	}
	return modes
}

// Variance returns the population variance (divide by N), 0 for N <= 1.
func Variance(data []float64) float64 {
	n := len(data)
	if n <= 1 {
		return 0
	}
	mean := Mean(data)
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(n)
}

// StdDev returns the population standard deviation.
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// Percentile returns the p-th percentile (p in [0,100]) using linear
// interpolation between bracketing order statistics (the R type 7 method).
// p=0 is the minimum, p=100 the maximum; empty input returns 0.
func Percentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	rank := p / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Quartiles returns Q1, Q2 (median) and Q3.
func Quartiles(data []float64) (q1, q2, q3 float64) {
	return Percentile(data, 25), Percentile(data, 50), Percentile(data, 75)
}

// IQR returns the interquartile range Q3-Q1.
func IQR(data []float64) float64 {
	q1, _, q3 := Quartiles(data)
	return q3 - q1
}

// Correlation returns the Pearson correlation of two aligned series. It is
// the one validating function in this package: mismatched lengths return
// ErrLengthMismatch. When either series has zero variance the correlation is
// reported as 0 rather than dividing by zero.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	if len(x) == 0 {
		return 0, nil
	}
	if Variance(x) == 0 || Variance(y) == 0 {
		return 0, nil
	}
	return stat.Correlation(x, y, nil), nil
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// Degenerate inputs (empty, single point, constant x) produce a zero-slope
// fit instead of an error; dashboards render the flat line.
func LinearRegression(x, y []float64) models.LinearFit {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n == 0 {
		return models.LinearFit{}
	}
	if n == 1 {
		return models.LinearFit{Intercept: y[0]}
	}
	x, y = x[:n], y[:n]
	if Variance(x) == 0 {
		return models.LinearFit{Intercept: Mean(y)}
	}
	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, intercept, slope)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		r2 = 0
	}
	return models.LinearFit{Slope: slope, Intercept: intercept, R2: r2}
}

// ZScore returns (value - mean) / stdDev against the given series, 0 when the
// series has no spread.
func ZScore(value float64, data []float64) float64 {
	sd := StdDev(data)
	if sd == 0 {
		return 0
	}
	return (value - Mean(data)) / sd
}

// ZScores standardizes every point of the series. A zero-spread series maps
// to all zeros.
func ZScores(data []float64) []float64 {
	scores := make([]float64, len(data))
	sd := StdDev(data)
	if sd == 0 {
		return scores
	}
	mean := Mean(data)
	for i, v := range data {
		scores[i] = (v - mean) / sd
	}
	return scores
}

// CoefficientOfVariation returns stdDev/|mean| as a percentage, 0 when the
// mean is 0.
func CoefficientOfVariation(data []float64) float64 {
	mean := Mean(data)
	if mean == 0 {
		return 0
	}
	return StdDev(data) / math.Abs(mean) * 100
}

// Describe computes the summary bundle dashboards render for a flat series.
// Empty input yields the zero summary except for the Min/Max sentinels.
func Describe(data []float64) models.SeriesSummary {
	if len(data) == 0 {
		return models.SeriesSummary{Min: math.Inf(1), Max: math.Inf(-1)}
	}
	q1, q2, q3 := Quartiles(data)
	return models.SeriesSummary{
		Count:    len(data),
		Mean:     Mean(data),
		Median:   q2,
		StdDev:   StdDev(data),
		Variance: Variance(data),
		Min:      Min(data),
		Max:      Max(data),
		Range:    Range(data),
		Q1:       q1,
		Q3:       q3,
		IQR:      q3 - q1,
		CV:       CoefficientOfVariation(data),
	}
}
