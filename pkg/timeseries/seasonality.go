package timeseries

// Autocorrelation computes the normalized autocovariance of the series at a
// single lag. Out-of-range lags and zero-variance series return 0.
func Autocorrelation(data []float64, lag int) float64 {
	n := len(data)
	if lag < 0 || lag >= n {
		return 0
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	den := 0.0
	for _, v := range data {
		d := v - mean
		den += d * d
	}
	if den == 0 {
		return 0
	}
	num := 0.0
	for t := lag; t < n; t++ {
		num += (data[t] - mean) * (data[t-lag] - mean)
	}
	return num / den
}

// ACF returns the autocorrelation function at lags 0..maxLag. Lags beyond
// the series length are dropped.
func ACF(data []float64, maxLag int) []float64 {
	if maxLag < 0 {
		maxLag = 0
	}
	if maxLag >= len(data) {
		maxLag = len(data) - 1
	}
	if maxLag < 0 {
		return []float64{}
	}
	out := make([]float64, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		out[lag] = Autocorrelation(data, lag)
	}
	return out
}

// Seasonality detection requires a correlation peak above this level.
const seasonalityMinCorrelation = 0.3

// DetectSeasonality scans the ACF at lags >= 2 for the first local maximum
// above 0.3 and returns it as the seasonal period. The series must be at
// least twice maxPeriod long; 0 means no seasonality was found.
func DetectSeasonality(data []float64, maxPeriod int) int {
	if maxPeriod < 2 || len(data) < 2*maxPeriod {
		return 0
	}
	acf := ACF(data, maxPeriod)
	for lag := 2; lag < len(acf)-1; lag++ {
		if acf[lag] > seasonalityMinCorrelation && acf[lag] > acf[lag-1] && acf[lag] >= acf[lag+1] {
			return lag
		}
	}
	return 0
}
