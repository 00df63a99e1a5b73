package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/errors"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

func testValues() []float64 {
	return []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
}

func TestNewEngineDefaults(t *testing.T) {
	engine := NewEngine(nil, nil)

	require.NotNil(t, engine)
	assert.True(t, engine.config.CacheEnabled)
	assert.Equal(t, 30*time.Minute, engine.config.CacheTTL)
	assert.NotNil(t, engine.logger)
}

func TestPerformAnalysisSummary(t *testing.T) {
	engine := NewEngine(nil, logrus.New())

	result, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityType:   "risk",
		EntityID:     "RSK-1",
		Values:       testValues(),
		AnalysisType: []string{"summary"},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Summary)

	assert.Equal(t, 10, result.Summary.Length)
	assert.Equal(t, 14.5, result.Summary.Mean)
	assert.Nil(t, result.Trend)
	assert.Nil(t, result.Forecast)
}

func TestPerformAnalysisAll(t *testing.T) {
	engine := NewEngine(nil, logrus.New())

	result, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityID:     "RSK-2",
		Values:       testValues(),
		AnalysisType: []string{"all"},
	})
	require.NoError(t, err)

	require.NotNil(t, result.Summary)
	require.NotNil(t, result.Trend)
	require.NotNil(t, result.AnomalySummary)
	require.NotNil(t, result.Forecast)
	require.NotNil(t, result.Prediction)
	assert.Equal(t, models.TrendUp, result.Trend.Direction)
	assert.Len(t, result.Forecast.Forecast, engine.config.ForecastPeriods)
	assert.Equal(t, "RSK-2", result.Prediction.EntityID)
}

func TestPerformAnalysisAnomalies(t *testing.T) {
	engine := NewEngine(nil, logrus.New())
	values := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		50}

	result, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityID:     "CTL-1",
		Values:       values,
		AnalysisType: []string{"anomaly"},
	})
	require.NoError(t, err)

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, 20, result.Anomalies[0].Index)
	require.NotNil(t, result.AnomalySummary)
	assert.Positive(t, result.AnomalySummary.Total)
}

func TestPerformAnalysisEmptyValues(t *testing.T) {
	engine := NewEngine(nil, logrus.New())

	_, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityID:     "RSK-3",
		AnalysisType: []string{"summary"},
	})
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.CodeInsufficientData, appErr.Code)
}

func TestPerformAnalysisForecastHorizonParameter(t *testing.T) {
	engine := NewEngine(nil, logrus.New())

	result, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityID:     "RSK-4",
		Values:       testValues(),
		AnalysisType: []string{"forecast"},
		Parameters:   map[string]interface{}{"forecast_horizon": 12},
	})
	require.NoError(t, err)
	assert.Len(t, result.Forecast.Forecast, 12)
}

func TestPerformAnalysisCaching(t *testing.T) {
	engine := NewEngine(nil, logrus.New())
	request := &AnalysisRequest{
		EntityID:     "RSK-5",
		Values:       testValues(),
		AnalysisType: []string{"summary"},
	}

	first, err := engine.PerformAnalysis(context.Background(), request)
	require.NoError(t, err)
	second, err := engine.PerformAnalysis(context.Background(), request)
	require.NoError(t, err)

	// The cached result comes back as-is, timestamp included.
	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Same(t, first, second)
}

func TestPerformAnalysisCacheKeyedOnSeriesContent(t *testing.T) {
	engine := NewEngine(nil, logrus.New())

	first, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityID:     "RSK-7",
		Values:       []float64{1, 2, 3, 4, 5},
		AnalysisType: []string{"summary"},
	})
	require.NoError(t, err)

	// Same entity, same length, different history: must not hit the
	// first request's cache entry.
	second, err := engine.PerformAnalysis(context.Background(), &AnalysisRequest{
		EntityID:     "RSK-7",
		Values:       []float64{100, 90, 80, 70, 60},
		AnalysisType: []string{"summary"},
	})
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.InDelta(t, 3.0, first.Summary.Mean, 1e-9)
	assert.InDelta(t, 80.0, second.Summary.Mean, 1e-9)
}

func TestPerformAnalysisCacheDisabled(t *testing.T) {
	config := DefaultEngineConfig()
	config.CacheEnabled = false
	engine := NewEngine(config, logrus.New())
	request := &AnalysisRequest{
		EntityID:     "RSK-6",
		Values:       testValues(),
		AnalysisType: []string{"summary"},
	}

	first, err := engine.PerformAnalysis(context.Background(), request)
	require.NoError(t, err)
	second, err := engine.PerformAnalysis(context.Background(), request)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestPerformAnalysisCancelledContext(t *testing.T) {
	engine := NewEngine(nil, logrus.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.PerformAnalysis(ctx, &AnalysisRequest{
		EntityID:     "RSK-7",
		Values:       testValues(),
		AnalysisType: []string{"summary"},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareSeries(t *testing.T) {
	engine := NewEngine(nil, logrus.New())

	r, err := engine.CompareSeries([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	_, err = engine.CompareSeries([]float64{1, 2, 3}, []float64{1, 2})
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.CodeLengthMismatch, appErr.Code)
}

func BenchmarkPerformAnalysisAll(b *testing.B) {
	engine := NewEngine(&EngineConfig{ForecastPeriods: 6, Sensitivity: "medium"}, logrus.New())
	values := make([]float64, 500)
	for i := range values {
		values[i] = float64(i%24) + float64(i)*0.01
	}
	request := &AnalysisRequest{
		EntityID:     "bench",
		Values:       values,
		AnalysisType: []string{"all"},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.PerformAnalysis(context.Background(), request)
	}
}
