// Package timeseries analyzes equally-spaced numeric observations: moving
// averages, momentum, trend and seasonality detection, volatility, smoothing
// filters, simple forecasting and cumulative transforms. Binding values to
// timestamps is the caller's concern; this layer sees flat series only.
//
// Windowed transforms (SMA, WMA, rolling measures) return a shorter series of
// length len(data)-window+1, while the recursive smoothers (EMA, DEMA, TEMA)
// return a series the same length as the input. Downstream callers index the
// two families differently, so the asymmetry is part of the contract.
package timeseries

import (
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// SMA computes the simple moving average over a sliding window. A window
// larger than the series degrades to a single aggregate over the whole input.
func SMA(data []float64, window int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	if window < 1 {
		window = 1
	}
	if window > len(data) {
		return []float64{stats.Mean(data)}
	}
	out := make([]float64, 0, len(data)-window+1)
	sum := stats.Sum(data[:window])
	out = append(out, sum/float64(window))
	for i := window; i < len(data); i++ {
		sum += data[i] - data[i-window]
		out = append(out, sum/float64(window))
	}
	return out
}

// WMA computes a linearly weighted moving average: the j-th oldest point in
// each window carries weight j+1, normalized by the triangular number.
func WMA(data []float64, window int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	if window < 1 {
		window = 1
	}
	if window > len(data) {
		window = len(data)
	}
	denom := float64(window*(window+1)) / 2
	out := make([]float64, 0, len(data)-window+1)
	for i := 0; i+window <= len(data); i++ {
		sum := 0.0
		for j := 0; j < window; j++ {
			sum += data[i+j] * float64(j+1)
		}
		out = append(out, sum/denom)
	}
	return out
}

// EMA computes an exponential moving average seeded from the first value.
// Output length equals input length.
func EMA(data []float64, window int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	if window < 1 {
		window = 1
	}
	k := 2.0 / float64(window+1)
	out := make([]float64, len(data))
	out[0] = data[0]
	for i := 1; i < len(data); i++ {
		out[i] = data[i]*k + out[i-1]*(1-k)
	}
	return out
}

// DEMA computes the double exponential moving average 2*EMA - EMA(EMA),
// which reduces the lag of plain EMA.
func DEMA(data []float64, window int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	e1 := EMA(data, window)
	e2 := EMA(e1, window)
	out := make([]float64, len(data))
	for i := range out {
		out[i] = 2*e1[i] - e2[i]
	}
	return out
}

// TEMA computes the triple exponential moving average 3*(EMA-EMA2) + EMA3.
func TEMA(data []float64, window int) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	e1 := EMA(data, window)
	e2 := EMA(e1, window)
	e3 := EMA(e2, window)
	out := make([]float64, len(data))
	for i := range out {
		out[i] = 3*(e1[i]-e2[i]) + e3[i]
	}
	return out
}

// ROC computes the percentage rate of change over the given lag. A zero
// denominator emits 0 for that point.
func ROC(data []float64, period int) []float64 {
	if period < 1 {
		period = 1
	}
	if len(data) <= period {
		return []float64{}
	}
	out := make([]float64, len(data)-period)
	for i := period; i < len(data); i++ {
		prev := data[i-period]
		if prev == 0 {
			out[i-period] = 0
			continue
		}
		out[i-period] = (data[i] - prev) / prev * 100
	}
	return out
}

// Momentum computes the absolute change over the given lag.
func Momentum(data []float64, period int) []float64 {
	if period < 1 {
		period = 1
	}
	if len(data) <= period {
		return []float64{}
	}
	out := make([]float64, len(data)-period)
	for i := period; i < len(data); i++ {
		out[i-period] = data[i] - data[i-period]
	}
	return out
}

// Velocity is the first difference of the series.
func Velocity(data []float64) []float64 {
	return Momentum(data, 1)
}

// Acceleration is the second difference (velocity of the velocity).
func Acceleration(data []float64) []float64 {
	return Velocity(Velocity(data))
}
