package outliers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

func TestDetectEnsemble(t *testing.T) {
	results := DetectEnsemble(spikedSeries(), EnsembleOptions{})

	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, 20, r.Index)
	assert.Equal(t, 50.0, r.Value)
	assert.Equal(t, models.DirectionHigh, r.Direction)
	// Every method on the default panel flags the spike.
	assert.Equal(t, 1.0, r.Confidence)
	assert.Len(t, r.Methods, len(DefaultEnsembleMethods))
}

func TestDetectEnsembleMinConfidenceFilters(t *testing.T) {
	// Demand unanimity on a reduced panel.
	results := DetectEnsemble(spikedSeries(), EnsembleOptions{
		Methods:       []models.DetectionMethod{models.MethodZScore, models.MethodIQR},
		MinConfidence: 1.0,
	})
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].Confidence)
}

func TestDetectEnsembleSensitivityOrdering(t *testing.T) {
	// A milder deviation that high sensitivity catches and low does not.
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		12.5}

	high := DetectEnsemble(data, EnsembleOptions{Sensitivity: SensitivityHigh, MinConfidence: 0.2})
	low := DetectEnsemble(data, EnsembleOptions{Sensitivity: SensitivityLow, MinConfidence: 0.2})

	assert.GreaterOrEqual(t, len(high), len(low))
}

func TestDetectEnsembleCleanSeries(t *testing.T) {
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8, 10.1, 9.9}
	assert.Empty(t, DetectEnsemble(data, EnsembleOptions{}))
}

func TestDetectEnsembleSortedByConfidence(t *testing.T) {
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		50, 13}
	results := DetectEnsemble(data, EnsembleOptions{MinConfidence: 0.1})

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
	}
}

func TestSummarizeAnomalies(t *testing.T) {
	results := []models.OutlierResult{
		{Index: 3, Method: models.MethodZScore, Direction: models.DirectionHigh},
		{Index: 3, Method: models.MethodIQR, Direction: models.DirectionHigh},
		{Index: 7, Method: models.MethodZScore, Direction: models.DirectionLow},
	}
	summary := SummarizeAnomalies(results, 10)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ByMethod[models.MethodZScore])
	assert.Equal(t, 1, summary.ByMethod[models.MethodIQR])
	assert.Equal(t, 2, summary.ByDirection[models.DirectionHigh])
	// Two distinct indices out of ten points.
	assert.InDelta(t, 20.0, summary.PercentFlagged, 1e-12)
}

func TestSummarizeAnomaliesEmpty(t *testing.T) {
	summary := SummarizeAnomalies(nil, 0)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.PercentFlagged)
}
