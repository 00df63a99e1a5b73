// Package prediction turns metric histories into multi-period forecasts with
// confidence intervals, qualitative trend classification and alerts, plus
// risk clustering and early-warning aggregation for the GRC dashboards.
package prediction

import (
	"fmt"
	"math"
	"time"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/timeseries"
)

// Model blend weights. SES leads to favor recency, linear regression keeps
// long-run drift, the moving average damps noise. Calibration data: fixtures
// and alert thresholds downstream assume these exact weights.
const (
	weightSES    = 0.40
	weightLinear = 0.35
	weightMA     = 0.25
)

// Confidence-score blend weights and tier cutoffs.
const (
	weightDataVolume    = 0.3
	weightInvVolatility = 0.4
	weightTrendStrength = 0.3

	tierHighCutoff   = 0.7
	tierMediumCutoff = 0.4

	// Data volume stops improving the score past this many observations.
	dataVolumeCap = 30
)

// PredictionTTL is how long a prediction is considered fresh. Expiry is
// advisory metadata for callers; the engine never enforces it.
const PredictionTTL = 7 * 24 * time.Hour

// ModelBlended tags predictions produced by the weighted three-model blend.
const ModelBlended = "blended_ses_linear_ma"

// ModelInsufficientData tags predictions returned below a wrapper's
// minimum-data gate.
const ModelInsufficientData = "insufficient_data"

// CV above this percentage raises a volatility-spike alert.
const volatilityAlertCV = 30.0

// Options configures a prediction run. Zero values use the documented
// defaults.
type Options struct {
	// Periods ahead to forecast; defaults to 6.
	Periods int
	// Alpha is the SES smoothing factor; defaults to 0.3.
	Alpha float64
	// ConfidenceLevel for forecast intervals; defaults to 0.95.
	ConfidenceLevel float64
	// MAWindow is the trend-adjusted moving-average lookback; defaults to 5.
	MAWindow int
	// HigherIsBetter maps trend direction onto the improving/deteriorating
	// outlook. Risk scores and issue volumes set this false.
	HigherIsBetter bool
	// AsOf stamps GeneratedAt/ExpiresAt. The engine never reads the clock;
	// callers supply their notion of now.
	AsOf time.Time
}

func (o Options) withDefaults() Options {
	if o.Periods <= 0 {
		o.Periods = 6
	}
	if o.Alpha <= 0 || o.Alpha >= 1 {
		o.Alpha = 0.3
	}
	if o.ConfidenceLevel <= 0 || o.ConfidenceLevel >= 1 {
		o.ConfidenceLevel = 0.95
	}
	if o.MAWindow < 2 {
		o.MAWindow = 5
	}
	return o
}

// CreatePrediction is the shared core behind every domain wrapper: trend
// classification, a three-model blended forecast, horizon-widening
// confidence intervals, a tiered confidence score, and generic volatility
// alerts. Domain wrappers layer threshold and reversal alerts on top.
func CreatePrediction(entityID string, values []float64, opts Options) models.Prediction {
	opts = opts.withDefaults()
	pred := models.Prediction{
		EntityID:    entityID,
		Outlook:     models.OutlookStable,
		Tier:        models.TierLow,
		Model:       ModelBlended,
		GeneratedAt: opts.AsOf,
		ExpiresAt:   opts.AsOf.Add(PredictionTTL),
	}
	n := len(values)
	if n == 0 {
		return pred
	}
	pred.CurrentValue = values[n-1]

	trend := timeseries.DetectTrend(values)
	pred.Trend = trend
	pred.Outlook = outlookFor(trend.Direction, opts.HigherIsBetter)

	ses := timeseries.ForecastSES(values, opts.Alpha, opts.Periods, opts.ConfidenceLevel)
	linear := timeseries.ForecastLinear(values, opts.Periods, opts.ConfidenceLevel)
	maBase := movingAverageBase(values, opts.MAWindow)

	sigma := residualStdDev(values)
	z := 1.96
	switch opts.ConfidenceLevel {
	case 0.90:
		z = 1.645
	case 0.99:
		z = 2.576
	}

	score := confidenceScore(values, trend)
	pred.Confidence = score
	pred.Tier = tierFor(score)

	pred.Values = make([]models.PredictedValue, opts.Periods)
	for h := 1; h <= opts.Periods; h++ {
		maForecast := maBase + trend.Slope*float64(h)
		blended := weightSES*ses.Forecast[h-1] + weightLinear*linear.Forecast[h-1] + weightMA*maForecast
		halfWidth := z * sigma * math.Sqrt(float64(h))
		pred.Values[h-1] = models.PredictedValue{
			Period:     h,
			Label:      fmt.Sprintf("Period %d", h),
			Value:      blended,
			LowerBound: blended - halfWidth,
			UpperBound: blended + halfWidth,
			Confidence: score * math.Exp(-0.05*float64(h-1)),
		}
	}

	if cv := stats.CoefficientOfVariation(values); cv > volatilityAlertCV {
		pred.Alerts = append(pred.Alerts, models.PredictionAlert{
			Type:     models.AlertVolatilitySpike,
			Severity: models.SeverityMedium,
			Message:  fmt.Sprintf("metric volatility is elevated (CV %.1f%%), forecasts carry wide uncertainty", cv),
		})
	}
	return pred
}

func outlookFor(direction models.TrendDirection, higherIsBetter bool) models.MetricOutlook {
	switch direction {
	case models.TrendUp:
		if higherIsBetter {
			return models.OutlookImproving
		}
		return models.OutlookDeteriorating
	case models.TrendDown:
		if higherIsBetter {
			return models.OutlookDeteriorating
		}
		return models.OutlookImproving
	default:
		return models.OutlookStable
	}
}

// movingAverageBase is the mean of the trailing window, the anchor of the
// trend-adjusted MA model.
func movingAverageBase(values []float64, window int) float64 {
	if window > len(values) {
		window = len(values)
	}
	return stats.Mean(values[len(values)-window:])
}

// residualStdDev measures one-step-ahead errors of a 3-point rolling-mean
// predictor, the dispersion that scales the forecast intervals.
func residualStdDev(values []float64) float64 {
	if len(values) < 4 {
		return stats.StdDev(values)
	}
	residuals := make([]float64, 0, len(values)-3)
	for i := 3; i < len(values); i++ {
		predicted := stats.Mean(values[i-3 : i])
		residuals = append(residuals, values[i]-predicted)
	}
	return stats.StdDev(residuals)
}

// confidenceScore blends data-volume adequacy, inverse volatility and trend
// strength into one [0,1] score.
func confidenceScore(values []float64, trend models.TrendResult) float64 {
	dataComponent := math.Min(float64(len(values))/dataVolumeCap, 1)
	cv := stats.CoefficientOfVariation(values)
	volatilityComponent := 1 - math.Min(cv/100, 1)
	score := weightDataVolume*dataComponent + weightInvVolatility*volatilityComponent + weightTrendStrength*trend.Strength
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func tierFor(score float64) models.ConfidenceTier {
	switch {
	case score >= tierHighCutoff:
		return models.TierHigh
	case score >= tierMediumCutoff:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
