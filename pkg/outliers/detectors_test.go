package outliers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

// spikedSeries is 20 tight readings around 10 with one extreme value at the
// end (index 20). Every whole-series detector should flag only that point at
// default thresholds.
func spikedSeries() []float64 {
	return []float64{
		10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		50,
	}
}

func TestDetectZScore(t *testing.T) {
	results := DetectZScore(spikedSeries(), 0)

	require.Len(t, results, 1)
	assert.Equal(t, 20, results[0].Index)
	assert.Equal(t, 50.0, results[0].Value)
	assert.Equal(t, models.MethodZScore, results[0].Method)
	assert.Equal(t, models.DirectionHigh, results[0].Direction)
	assert.Greater(t, results[0].Score, 3.0)
	assert.Equal(t, DefaultZScoreThreshold, results[0].Threshold)
}

func TestDetectZScoreZeroSpread(t *testing.T) {
	assert.Nil(t, DetectZScore([]float64{5, 5, 5, 5}, 0))
	assert.Nil(t, DetectZScore(nil, 0))
}

func TestDetectZScoreDoesNotMutateInput(t *testing.T) {
	data := spikedSeries()
	DetectZScore(data, 0)
	assert.Equal(t, spikedSeries(), data)
}

func TestDetectModifiedZScore(t *testing.T) {
	results := DetectModifiedZScore(spikedSeries(), 0)

	require.NotEmpty(t, results)
	assert.Equal(t, 20, results[0].Index)
	assert.Equal(t, models.MethodModifiedZ, results[0].Method)
	assert.Equal(t, models.DirectionHigh, results[0].Direction)
}

func TestDetectModifiedZScoreZeroMAD(t *testing.T) {
	// More than half the points identical makes the MAD zero; the detector
	// declines to score rather than dividing by zero.
	data := []float64{10, 10, 10, 10, 10, 10, 10, 50}
	assert.Nil(t, DetectModifiedZScore(data, 0))
}

func TestDetectIQR(t *testing.T) {
	results := DetectIQR(spikedSeries(), 0)

	require.Len(t, results, 1)
	assert.Equal(t, 20, results[0].Index)
	assert.Equal(t, models.MethodIQR, results[0].Method)
	assert.Equal(t, models.DirectionHigh, results[0].Direction)
	assert.Positive(t, results[0].Score)
}

func TestDetectIQRLowOutlier(t *testing.T) {
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, -30}
	results := DetectIQR(data, 0)

	require.NotEmpty(t, results)
	assert.Equal(t, 8, results[0].Index)
	assert.Equal(t, models.DirectionLow, results[0].Direction)
}

func TestDetectIQRSmallOrFlatSeries(t *testing.T) {
	assert.Nil(t, DetectIQR([]float64{1, 2, 100}, 0))
	assert.Nil(t, DetectIQR([]float64{5, 5, 5, 5, 5}, 0))
}

func TestResultsSortedByScoreDescending(t *testing.T) {
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		45, -60}
	results := DetectZScore(data, 2.0)

	require.GreaterOrEqual(t, len(results), 2)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, 21, results[0].Index)
}
