package timeseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatPattern(pattern []float64, cycles int) []float64 {
	out := make([]float64, 0, len(pattern)*cycles)
	for i := 0; i < cycles; i++ {
		out = append(out, pattern...)
	}
	return out
}

func TestAutocorrelation(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}

	assert.InDelta(t, 1.0, Autocorrelation(data, 0), 1e-12)
	assert.Positive(t, Autocorrelation(data, 1))

	// Out-of-range lags and constant series return 0.
	assert.Equal(t, 0.0, Autocorrelation(data, -1))
	assert.Equal(t, 0.0, Autocorrelation(data, 6))
	assert.Equal(t, 0.0, Autocorrelation([]float64{3, 3, 3}, 1))
}

func TestACF(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	acf := ACF(data, 3)
	require.Len(t, acf, 4)
	assert.InDelta(t, 1.0, acf[0], 1e-12)

	// maxLag is capped at the series length.
	assert.Len(t, ACF([]float64{1, 2}, 10), 2)
	assert.Empty(t, ACF(nil, 5))
}

func TestDetectSeasonality(t *testing.T) {
	data := repeatPattern([]float64{0, 1, 0, -1}, 8)
	assert.Equal(t, 4, DetectSeasonality(data, 8))
}

func TestDetectSeasonalityNone(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	assert.Equal(t, 0, DetectSeasonality(data, 4))

	// Too little history for the requested period.
	assert.Equal(t, 0, DetectSeasonality([]float64{1, 2, 3}, 4))
	assert.Equal(t, 0, DetectSeasonality(repeatPattern([]float64{0, 1}, 10), 1))
}

func TestHPFilterDecomposition(t *testing.T) {
	data := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16}
	trend, cycle := HPFilter(data, 1600)

	require.Len(t, trend, len(data))
	require.Len(t, cycle, len(data))
	for i := range data {
		assert.InDelta(t, data[i], trend[i]+cycle[i], 1e-9)
	}

	// The trend is smoother than the raw data.
	rawVol := RollingVolatility(data, len(data))[0]
	trendVol := RollingVolatility(trend, len(trend))[0]
	assert.Less(t, trendVol, rawVol)
}

func TestHPFilterShortSeriesPassthrough(t *testing.T) {
	data := []float64{5, 9, 7}
	trend, cycle := HPFilter(data, 1600)
	assert.Equal(t, data, trend)
	assert.Equal(t, []float64{0, 0, 0}, cycle)
}

func TestSavitzkyGolay(t *testing.T) {
	data := []float64{1, 10, 1, 10, 1, 10, 1}
	out := SavitzkyGolay(data, 3)

	require.Len(t, out, len(data))
	// Edges pass through unsmoothed.
	assert.Equal(t, data[0], out[0])
	assert.Equal(t, data[len(data)-1], out[len(out)-1])
	// Interior points are pulled toward the local level.
	assert.Greater(t, out[1], 1.0)
	assert.Less(t, out[1], 10.0)
}
