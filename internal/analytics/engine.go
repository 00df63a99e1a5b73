// Package analytics orchestrates the statistical libraries behind one
// facade: a request names an entity series and the analysis passes to run,
// and the engine fans out to the stats, timeseries, outliers and prediction
// packages, caching results per request.
package analytics

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/errors"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/outliers"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/prediction"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/timeseries"
)

// Engine runs analysis passes over metric histories and caches the results.
type Engine struct {
	logger *logrus.Logger
	cache  *resultCache
	config *EngineConfig
}

// EngineConfig contains configuration for the analytics engine.
type EngineConfig struct {
	CacheEnabled    bool          `json:"cache_enabled" yaml:"cache_enabled"`
	CacheTTL        time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	MaxCacheSize    int           `json:"max_cache_size" yaml:"max_cache_size"`
	ForecastPeriods int           `json:"forecast_periods" yaml:"forecast_periods"`
	SmoothingFactor float64       `json:"smoothing_factor" yaml:"smoothing_factor"`
	ConfidenceLevel float64       `json:"confidence_level" yaml:"confidence_level"`
	Sensitivity     string        `json:"sensitivity" yaml:"sensitivity"`
}

// DefaultEngineConfig returns the configuration used when none is supplied.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		CacheEnabled:    true,
		CacheTTL:        30 * time.Minute,
		MaxCacheSize:    1000,
		ForecastPeriods: 6,
		SmoothingFactor: 0.3,
		ConfidenceLevel: 0.95,
		Sensitivity:     string(outliers.SensitivityMedium),
	}
}

// AnalysisRequest names the series and the passes to run. Values are the
// metric history ordered oldest first; Timestamps are optional and only used
// by passes that need calendar context.
type AnalysisRequest struct {
	EntityType   string                 `json:"entity_type"`
	EntityID     string                 `json:"entity_id"`
	Values       []float64              `json:"values"`
	Timestamps   []time.Time            `json:"timestamps,omitempty"`
	AnalysisType []string               `json:"analysis_type"`
	Parameters   map[string]interface{} `json:"parameters,omitempty"`
}

// AnalysisResult carries whichever sections the request asked for.
type AnalysisResult struct {
	EntityType     string                    `json:"entity_type"`
	EntityID       string                    `json:"entity_id"`
	Summary        *models.TimeSeriesSummary `json:"summary,omitempty"`
	Trend          *models.TrendResult       `json:"trend,omitempty"`
	Anomalies      []models.EnsembleResult   `json:"anomalies,omitempty"`
	AnomalySummary *models.AnomalySummary    `json:"anomaly_summary,omitempty"`
	Forecast       *models.ForecastResult    `json:"forecast,omitempty"`
	Prediction     *models.Prediction        `json:"prediction,omitempty"`
	ProcessingTime time.Duration             `json:"processing_time"`
	Timestamp      time.Time                 `json:"timestamp"`
}

type resultCache struct {
	data map[string]*cacheEntry
	mu   sync.RWMutex
	ttl  time.Duration
}

type cacheEntry struct {
	result    *AnalysisResult
	createdAt time.Time
	expiresAt time.Time
}

// NewEngine creates an analytics engine. A nil logger or config gets the
// defaults.
func NewEngine(config *EngineConfig, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	if config == nil {
		config = DefaultEngineConfig()
	}

	return &Engine{
		logger: logger,
		cache: &resultCache{
			data: make(map[string]*cacheEntry),
			ttl:  config.CacheTTL,
		},
		config: config,
	}
}

// PerformAnalysis executes the requested passes over the series.
func (e *Engine) PerformAnalysis(ctx context.Context, request *AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(request.Values) == 0 {
		return nil, errors.NewValidationError(errors.CodeInsufficientData, "no data points available for analysis")
	}

	if e.config.CacheEnabled {
		if cached := e.getCachedResult(request); cached != nil {
			e.logger.WithField("entity_id", request.EntityID).Debug("returning cached analytics result")
			return cached, nil
		}
	}

	result := &AnalysisResult{
		EntityType: request.EntityType,
		EntityID:   request.EntityID,
		Timestamp:  time.Now(),
	}

	requested := make(map[string]bool, len(request.AnalysisType))
	for _, analysisType := range request.AnalysisType {
		requested[analysisType] = true
	}
	wants := func(name string) bool { return requested[name] || requested["all"] }

	if wants("summary") {
		summary := timeseries.DescribeTimeSeries(request.Values)
		result.Summary = &summary
	}
	if wants("trend") {
		trend := timeseries.DetectTrend(request.Values)
		result.Trend = &trend
	}
	if wants("anomaly") {
		result.Anomalies = outliers.DetectEnsemble(request.Values, outliers.EnsembleOptions{
			Sensitivity: outliers.Sensitivity(e.config.Sensitivity),
		})
		flagged := make([]models.OutlierResult, len(result.Anomalies))
		for i, a := range result.Anomalies {
			flagged[i] = a.OutlierResult
		}
		summary := outliers.SummarizeAnomalies(flagged, len(request.Values))
		result.AnomalySummary = &summary
	}
	if wants("forecast") {
		forecast := timeseries.ForecastSES(request.Values, e.config.SmoothingFactor,
			e.forecastHorizon(request), e.config.ConfidenceLevel)
		result.Forecast = &forecast
	}
	if wants("prediction") {
		pred := prediction.CreatePrediction(request.EntityID, request.Values, prediction.Options{
			Periods:         e.forecastHorizon(request),
			Alpha:           e.config.SmoothingFactor,
			ConfidenceLevel: e.config.ConfidenceLevel,
			AsOf:            result.Timestamp,
		})
		result.Prediction = &pred
	}

	result.ProcessingTime = time.Since(start)

	if e.config.CacheEnabled {
		e.cacheResult(request, result)
	}

	e.logger.WithFields(logrus.Fields{
		"entity_id": request.EntityID,
		"passes":    strings.Join(request.AnalysisType, ","),
		"elapsed":   result.ProcessingTime,
	}).Debug("analysis complete")

	return result, nil
}

// CompareSeries reports the correlation between two metric histories.
func (e *Engine) CompareSeries(x, y []float64) (float64, error) {
	r, err := stats.Correlation(x, y)
	if err != nil {
		return 0, errors.WrapError(err, errors.ErrorTypeValidation, errors.CodeLengthMismatch,
			"series must be the same length to correlate")
	}
	return r, nil
}

func (e *Engine) forecastHorizon(request *AnalysisRequest) int {
	if raw, ok := request.Parameters["forecast_horizon"]; ok {
		switch v := raw.(type) {
		case int:
			if v > 0 {
				return v
			}
		case float64:
			if v > 0 {
				return int(v)
			}
		}
	}
	return e.config.ForecastPeriods
}

func (e *Engine) getCachedResult(request *AnalysisRequest) *AnalysisResult {
	e.cache.mu.RLock()
	defer e.cache.mu.RUnlock()

	entry, exists := e.cache.data[e.generateCacheKey(request)]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.result
}

func (e *Engine) cacheResult(request *AnalysisRequest, result *AnalysisResult) {
	e.cache.mu.Lock()
	defer e.cache.mu.Unlock()

	now := time.Now()
	e.cache.data[e.generateCacheKey(request)] = &cacheEntry{
		result:    result,
		createdAt: now,
		expiresAt: now.Add(e.cache.ttl),
	}

	if len(e.cache.data) > e.config.MaxCacheSize {
		e.evictOldestEntry()
	}
}

func (e *Engine) generateCacheKey(request *AnalysisRequest) string {
	return fmt.Sprintf("%s_%s_%d_%x_%s_%v", request.EntityType, request.EntityID,
		len(request.Values), digestValues(request.Values),
		strings.Join(request.AnalysisType, ","), request.Parameters)
}

// digestValues hashes the series content so that two histories of equal
// length for the same entity never share a cache entry.
func digestValues(values []float64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (e *Engine) evictOldestEntry() {
	var oldestKey string
	oldestTime := time.Now()

	for key, entry := range e.cache.data {
		if entry.createdAt.Before(oldestTime) {
			oldestTime = entry.createdAt
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(e.cache.data, oldestKey)
	}
}
