package timeseries

// hpFilterIterations is fixed; downstream alert thresholds were calibrated
// against the decomposition this exact iteration count produces.
const hpFilterIterations = 100

// HPFilter decomposes the series into trend and cycle components with a
// simplified iterative Hodrick-Prescott pass: each sweep pulls every trend
// point toward the average of its neighbors (the second-difference penalty),
// weighted by lambda against fidelity to the observed value. Series shorter
// than 4 points come back verbatim as trend with a zero cycle.
//
// This is deliberately not the canonical sparse-matrix HP solution; see the
// calibration note above.
func HPFilter(data []float64, lambda float64) (trend, cycle []float64) {
	n := len(data)
	trend = make([]float64, n)
	cycle = make([]float64, n)
	copy(trend, data)
	if n < 4 {
		return trend, cycle
	}
	if lambda <= 0 {
		lambda = 1600
	}

	for iter := 0; iter < hpFilterIterations; iter++ {
		trend[0] = (data[0] + lambda*trend[1]) / (1 + lambda)
		for i := 1; i < n-1; i++ {
			neighbor := (trend[i-1] + trend[i+1]) / 2
			trend[i] = (data[i] + lambda*neighbor) / (1 + lambda)
		}
		trend[n-1] = (data[n-1] + lambda*trend[n-2]) / (1 + lambda)
	}

	for i := range data {
		cycle[i] = data[i] - trend[i]
	}
	return trend, cycle
}

// SavitzkyGolay smooths the series with an inverse-distance-weighted average
// over a centered window. Edge points whose window would run off the series
// pass through unsmoothed.
//
// This is a simplified stand-in for a true polynomial-regression
// Savitzky-Golay filter; the simplified behavior is load-bearing for
// downstream calibration and must not be upgraded silently.
func SavitzkyGolay(data []float64, window int) []float64 {
	n := len(data)
	out := make([]float64, n)
	copy(out, data)
	if window < 3 {
		window = 3
	}
	half := window / 2
	for i := half; i < n-half; i++ {
		sum, weightSum := 0.0, 0.0
		for j := i - half; j <= i+half; j++ {
			dist := j - i
			if dist < 0 {
				dist = -dist
			}
			w := 1.0 / float64(1+dist)
			sum += data[j] * w
			weightSum += w
		}
		out[i] = sum / weightSum
	}
	return out
}
