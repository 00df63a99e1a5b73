package models

import "time"

// MetricOutlook is the trend direction re-expressed against the metric's
// desirability: a rising risk score deteriorates, a rising pass rate improves.
type MetricOutlook string

const (
	OutlookImproving     MetricOutlook = "improving"
	OutlookStable        MetricOutlook = "stable"
	OutlookDeteriorating MetricOutlook = "deteriorating"
)

// ConfidenceTier buckets the weighted prediction confidence score.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
)

// AlertType tags the condition that raised a prediction alert.
type AlertType string

const (
	AlertThresholdBreach AlertType = "threshold_breach"
	AlertTrendReversal   AlertType = "trend_reversal"
	AlertVolatilitySpike AlertType = "volatility_spike"
)

// Severity ranks alerts and anomalies for triage.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// PredictedValue is a single forecast period with its interval.
type PredictedValue struct {
	Period     int     `json:"period"`
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
	Confidence float64 `json:"confidence"`
}

// PredictionAlert flags a condition a caller should surface to users.
// Period, PredictedValue and Threshold are set for forecast-bound alerts
// and omitted for whole-series conditions such as volatility spikes.
type PredictionAlert struct {
	Type           AlertType `json:"type"`
	Severity       Severity  `json:"severity"`
	Message        string    `json:"message"`
	Period         *int      `json:"period,omitempty"`
	PredictedValue *float64  `json:"predicted_value,omitempty"`
	Threshold      *float64  `json:"threshold,omitempty"`
}

// Prediction is the full multi-period outlook for one metric history.
// ExpiresAt is advisory metadata; the engine never enforces it.
type Prediction struct {
	EntityID     string            `json:"entity_id"`
	CurrentValue float64           `json:"current_value"`
	Values       []PredictedValue  `json:"values"`
	Trend        TrendResult       `json:"trend"`
	Outlook      MetricOutlook     `json:"outlook"`
	Confidence   float64           `json:"confidence"`
	Tier         ConfidenceTier    `json:"tier"`
	Model        string            `json:"model"`
	Alerts       []PredictionAlert `json:"alerts"`
	GeneratedAt  time.Time         `json:"generated_at"`
	ExpiresAt    time.Time         `json:"expires_at"`
}

// RiskCluster groups risks whose score histories move together.
type RiskCluster struct {
	Category        string      `json:"category"`
	EntityIDs       []string    `json:"entity_ids"`
	AverageScore    float64     `json:"average_score"`
	MeanCorrelation float64     `json:"mean_correlation"`
	Trend           TrendResult `json:"trend"`
}

// EarlyWarning is a flattened, severity-ordered view of prediction alerts
// with a suggested next step for the audit team.
type EarlyWarning struct {
	EntityID          string    `json:"entity_id"`
	Type              AlertType `json:"type"`
	Severity          Severity  `json:"severity"`
	Message           string    `json:"message"`
	RecommendedAction string    `json:"recommended_action"`
}
