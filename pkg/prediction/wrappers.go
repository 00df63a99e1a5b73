package prediction

import (
	"fmt"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/timeseries"
)

// Minimum history lengths gating each domain wrapper. Shorter histories
// return an insufficient-data prediction rather than an error so sparse
// dashboards still render a card.
const (
	MinRiskDataPoints       = 5
	MinControlDataPoints    = 6
	MinIssueDataPoints      = 7
	MinComplianceDataPoints = 6
)

// RiskThresholds are the configured alerting levels for a risk score.
// A zero level disables that alert.
type RiskThresholds struct {
	Critical float64
	High     float64
}

// PredictRiskScores forecasts a risk-score history and raises
// threshold-breach alerts for forecast periods crossing the configured
// critical/high levels. Rising risk deteriorates.
func PredictRiskScores(entityID string, scores []float64, thresholds RiskThresholds, opts Options) models.Prediction {
	if len(scores) < MinRiskDataPoints {
		return insufficientData(entityID, scores, opts)
	}
	opts.HigherIsBetter = false
	pred := CreatePrediction(entityID, scores, opts)

	criticalRaised, highRaised := false, false
	for _, pv := range pred.Values {
		if thresholds.Critical > 0 && pv.Value >= thresholds.Critical && !criticalRaised {
			pred.Alerts = append(pred.Alerts, breachAlert(models.SeverityCritical, pv, thresholds.Critical,
				fmt.Sprintf("risk score is forecast to reach %.1f in period %d, above the critical threshold %.1f", pv.Value, pv.Period, thresholds.Critical)))
			criticalRaised = true
			continue
		}
		if thresholds.High > 0 && pv.Value >= thresholds.High && !highRaised {
			pred.Alerts = append(pred.Alerts, breachAlert(models.SeverityHigh, pv, thresholds.High,
				fmt.Sprintf("risk score is forecast to reach %.1f in period %d, above the high threshold %.1f", pv.Value, pv.Period, thresholds.High)))
			highRaised = true
		}
	}
	return pred
}

// PredictControlEffectiveness forecasts a control pass-rate history. A
// declining pass rate with an established trend raises a trend-reversal
// alert.
func PredictControlEffectiveness(entityID string, passRates []float64, opts Options) models.Prediction {
	if len(passRates) < MinControlDataPoints {
		return insufficientData(entityID, passRates, opts)
	}
	opts.HigherIsBetter = true
	pred := CreatePrediction(entityID, passRates, opts)

	if pred.Trend.Direction == models.TrendDown && pred.Trend.Strength > 0.3 {
		pred.Alerts = append(pred.Alerts, models.PredictionAlert{
			Type:     models.AlertTrendReversal,
			Severity: models.SeverityHigh,
			Message:  "control pass rate is declining; effectiveness may fall below tolerance",
		})
	}
	return pred
}

// PredictIssueVolume forecasts the issue backlog, derived as the running sum
// of opened minus closed per period. A backlog forecast above backlogLimit
// raises a threshold-breach alert; a non-positive limit disables it.
func PredictIssueVolume(entityID string, opened, closed []float64, backlogLimit float64, opts Options) models.Prediction {
	n := len(opened)
	if len(closed) < n {
		n = len(closed)
	}
	net := make([]float64, n)
	for i := 0; i < n; i++ {
		net[i] = opened[i] - closed[i]
	}
	backlog := timeseries.CumSum(net)
	if len(backlog) < MinIssueDataPoints {
		return insufficientData(entityID, backlog, opts)
	}
	opts.HigherIsBetter = false
	pred := CreatePrediction(entityID, backlog, opts)

	for _, pv := range pred.Values {
		if backlogLimit > 0 && pv.Value >= backlogLimit {
			pred.Alerts = append(pred.Alerts, breachAlert(models.SeverityHigh, pv, backlogLimit,
				fmt.Sprintf("issue backlog is forecast to reach %.0f in period %d, above the limit %.0f", pv.Value, pv.Period, backlogLimit)))
			break
		}
	}
	return pred
}

// PredictComplianceScore forecasts a compliance-score history and alerts
// when any forecast period drops below the acceptable floor. Falling more
// than 10% under the floor escalates the alert to critical.
func PredictComplianceScore(entityID string, scores []float64, minAcceptable float64, opts Options) models.Prediction {
	if len(scores) < MinComplianceDataPoints {
		return insufficientData(entityID, scores, opts)
	}
	opts.HigherIsBetter = true
	pred := CreatePrediction(entityID, scores, opts)

	for _, pv := range pred.Values {
		if minAcceptable <= 0 || pv.Value >= minAcceptable {
			continue
		}
		severity := models.SeverityHigh
		if pv.Value < minAcceptable*0.9 {
			severity = models.SeverityCritical
		}
		pred.Alerts = append(pred.Alerts, breachAlert(severity, pv, minAcceptable,
			fmt.Sprintf("compliance score is forecast to fall to %.1f in period %d, below the acceptable floor %.1f", pv.Value, pv.Period, minAcceptable)))
		break
	}
	return pred
}

func breachAlert(severity models.Severity, pv models.PredictedValue, threshold float64, message string) models.PredictionAlert {
	period := pv.Period
	value := pv.Value
	t := threshold
	return models.PredictionAlert{
		Type:           models.AlertThresholdBreach,
		Severity:       severity,
		Message:        message,
		Period:         &period,
		PredictedValue: &value,
		Threshold:      &t,
	}
}

func insufficientData(entityID string, values []float64, opts Options) models.Prediction {
	opts = opts.withDefaults()
	pred := models.Prediction{
		EntityID:    entityID,
		Outlook:     models.OutlookStable,
		Tier:        models.TierLow,
		Model:       ModelInsufficientData,
		GeneratedAt: opts.AsOf,
		ExpiresAt:   opts.AsOf.Add(PredictionTTL),
	}
	if len(values) > 0 {
		pred.CurrentValue = values[len(values)-1]
	}
	return pred
}
