package models

// TrendDirection classifies the slope of a series over time.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// OutlierDirection indicates which side of the expected range a point falls on.
type OutlierDirection string

const (
	DirectionHigh OutlierDirection = "high"
	DirectionLow  OutlierDirection = "low"
	DirectionBoth OutlierDirection = "both"
)

// DetectionMethod tags which detector produced an outlier result.
type DetectionMethod string

const (
	MethodZScore        DetectionMethod = "zscore"
	MethodModifiedZ     DetectionMethod = "mad"
	MethodIQR           DetectionMethod = "iqr"
	MethodGrubbs        DetectionMethod = "grubbs"
	MethodIsolation     DetectionMethod = "isolation"
	MethodRollingZScore DetectionMethod = "rolling_zscore"
	MethodSpike         DetectionMethod = "spike"
	MethodLevelShift    DetectionMethod = "level_shift"
	MethodContextual    DetectionMethod = "contextual"
	MethodEnsemble      DetectionMethod = "ensemble"
)

// TrendResult is the outcome of regressing a series against its index.
type TrendResult struct {
	Direction  TrendDirection `json:"direction"`
	Slope      float64        `json:"slope"`
	Strength   float64        `json:"strength"`
	Confidence float64        `json:"confidence"`
}

// LinearFit contains ordinary-least-squares regression coefficients.
type LinearFit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// OutlierResult describes a single anomalous point in a series.
type OutlierResult struct {
	Index     int              `json:"index"`
	Value     float64          `json:"value"`
	Score     float64          `json:"score"`
	Method    DetectionMethod  `json:"method"`
	Direction OutlierDirection `json:"direction"`
	Threshold float64          `json:"threshold"`
}

// EnsembleResult is an outlier flagged by multiple detectors, with the
// fraction of requested methods that agreed.
type EnsembleResult struct {
	OutlierResult
	Confidence float64           `json:"confidence"`
	Methods    []DetectionMethod `json:"methods"`
}

// ForecastResult holds parallel forecast and interval arrays indexed by
// horizon (period 1..N).
type ForecastResult struct {
	Forecast []float64 `json:"forecast"`
	Lower    []float64 `json:"lower"`
	Upper    []float64 `json:"upper"`
	Method   string    `json:"method"`
}

// SeriesSummary is the one-shot describe() bundle for a flat series.
type SeriesSummary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	IQR      float64 `json:"iqr"`
	CV       float64 `json:"cv"`
}

// TimeSeriesSummary is the describeTimeSeries() bundle used by dashboards.
type TimeSeriesSummary struct {
	Length             int         `json:"length"`
	First              float64     `json:"first"`
	Last               float64     `json:"last"`
	Min                float64     `json:"min"`
	Max                float64     `json:"max"`
	Mean               float64     `json:"mean"`
	StdDev             float64     `json:"std_dev"`
	Trend              TrendResult `json:"trend"`
	Volatility         float64     `json:"volatility"`
	Lag1Autocorrelation float64    `json:"lag1_autocorrelation"`
	SeasonalPeriod     int         `json:"seasonal_period"`
}

// AnomalySummary aggregates a detection pass for reporting.
type AnomalySummary struct {
	Total          int                     `json:"total"`
	ByMethod       map[DetectionMethod]int `json:"by_method"`
	ByDirection    map[OutlierDirection]int `json:"by_direction"`
	PercentFlagged float64                 `json:"percent_flagged"`
}
