package timeseries

import (
	"math"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

const (
	// MethodSES tags simple-exponential-smoothing forecasts.
	MethodSES = "ses"
	// MethodLinear tags OLS-extrapolation forecasts.
	MethodLinear = "linear"

	defaultAlpha = 0.3
)

// zQuantile maps a confidence level to its normal quantile the same way the
// reporting layer rounds levels: anything that is not 0.90 or 0.99 gets the
// 95% value.
func zQuantile(confidence float64) float64 {
	switch confidence {
	case 0.90:
		return 1.645
	case 0.99:
		return 2.576
	default:
		return 1.96
	}
}

// ForecastSES produces a flat-line simple-exponential-smoothing forecast
// with a confidence interval that widens with the square root of the
// horizon. Alpha outside (0,1) falls back to 0.3. Empty input yields an
// all-zero forecast so sparse dashboards still render.
func ForecastSES(data []float64, alpha float64, periods int, confidence float64) models.ForecastResult {
	result := models.ForecastResult{
		Forecast: make([]float64, periods),
		Lower:    make([]float64, periods),
		Upper:    make([]float64, periods),
		Method:   MethodSES,
	}
	if periods <= 0 || len(data) == 0 {
		return result
	}
	if alpha <= 0 || alpha >= 1 {
		alpha = defaultAlpha
	}

	level := data[0]
	residuals := make([]float64, 0, len(data)-1)
	for i := 1; i < len(data); i++ {
		residuals = append(residuals, data[i]-level)
		level = alpha*data[i] + (1-alpha)*level
	}
	sigma := stats.StdDev(residuals)
	z := zQuantile(confidence)

	for h := 1; h <= periods; h++ {
		margin := z * sigma * math.Sqrt(float64(h))
		result.Forecast[h-1] = level
		result.Lower[h-1] = level - margin
		result.Upper[h-1] = level + margin
	}
	return result
}

// ForecastLinear extrapolates an OLS fit of value against index. The
// prediction interval uses the residual standard error with the leverage
// term, so it widens as the horizon moves away from the center of the data.
func ForecastLinear(data []float64, periods int, confidence float64) models.ForecastResult {
	result := models.ForecastResult{
		Forecast: make([]float64, periods),
		Lower:    make([]float64, periods),
		Upper:    make([]float64, periods),
		Method:   MethodLinear,
	}
	n := len(data)
	if periods <= 0 || n == 0 {
		return result
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	fit := stats.LinearRegression(xs, data)

	// Residual standard error with df = n-2, guarded for tiny samples.
	ssRes := 0.0
	for i, y := range data {
		pred := fit.Intercept + fit.Slope*float64(i)
		ssRes += (y - pred) * (y - pred)
	}
	df := float64(n - 2)
	if df <= 0 {
		df = 1
	}
	rse := math.Sqrt(ssRes / df)

	xMean := float64(n-1) / 2
	sxx := 0.0
	for i := 0; i < n; i++ {
		d := float64(i) - xMean
		sxx += d * d
	}
	z := zQuantile(confidence)

	for h := 1; h <= periods; h++ {
		x := float64(n-1) + float64(h)
		predicted := fit.Intercept + fit.Slope*x
		leverage := 0.0
		if sxx > 0 {
			leverage = (x - xMean) * (x - xMean) / sxx
		}
		se := rse * math.Sqrt(1+1/float64(n)+leverage)
		margin := z * se
		result.Forecast[h-1] = predicted
		result.Lower[h-1] = predicted - margin
		result.Upper[h-1] = predicted + margin
	}
	return result
}
