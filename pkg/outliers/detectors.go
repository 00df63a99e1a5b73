// Package outliers implements the anomaly detectors of the VeilVault
// analytics engine: whole-series statistical tests, rolling and contextual
// detectors that use local context, and ensemble voting across methods.
// Every detector is stateless and idempotent for a given input slice.
package outliers

import (
	"math"
	"sort"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// Default thresholds for the whole-series detectors.
const (
	DefaultZScoreThreshold    = 3.0
	DefaultModifiedZThreshold = 3.5
	DefaultIQRMultiplier      = 1.5

	// Normal-consistency constant relating MAD to the standard deviation.
	madScale = 0.6745
)

// DetectZScore flags points whose absolute z-score exceeds the threshold
// (default 3). A zero-spread series reports no outliers. Results are ordered
// by descending score.
func DetectZScore(data []float64, threshold float64) []models.OutlierResult {
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}
	sd := stats.StdDev(data)
	if sd == 0 {
		return nil
	}
	mean := stats.Mean(data)

	var results []models.OutlierResult
	for i, v := range data {
		z := (v - mean) / sd
		if math.Abs(z) > threshold {
			results = append(results, models.OutlierResult{
				Index:     i,
				Value:     v,
				Score:     math.Abs(z),
				Method:    models.MethodZScore,
				Direction: directionOf(z),
				Threshold: threshold,
			})
		}
	}
	sortByScore(results)
	return results
}

// DetectModifiedZScore flags points by the robust median/MAD variant
// (0.6745*|x-median|/MAD, default threshold 3.5). When the MAD is 0 the
// score cannot be computed and no outliers are reported.
func DetectModifiedZScore(data []float64, threshold float64) []models.OutlierResult {
	if threshold <= 0 {
		threshold = DefaultModifiedZThreshold
	}
	if len(data) == 0 {
		return nil
	}
	median := stats.Median(data)
	deviations := make([]float64, len(data))
	for i, v := range data {
		deviations[i] = math.Abs(v - median)
	}
	mad := stats.Median(deviations)
	if mad == 0 {
		return nil
	}

	var results []models.OutlierResult
	for i, v := range data {
		z := madScale * (v - median) / mad
		if math.Abs(z) > threshold {
			results = append(results, models.OutlierResult{
				Index:     i,
				Value:     v,
				Score:     math.Abs(z),
				Method:    models.MethodModifiedZ,
				Direction: directionOf(z),
				Threshold: threshold,
			})
		}
	}
	sortByScore(results)
	return results
}

// DetectIQR flags points beyond the Tukey fences Q1-k*IQR and Q3+k*IQR
// (default k=1.5). At least 4 points are required; a zero IQR reports no
// outliers. Score is the distance beyond the fence normalized by the IQR.
func DetectIQR(data []float64, multiplier float64) []models.OutlierResult {
	if multiplier <= 0 {
		multiplier = DefaultIQRMultiplier
	}
	if len(data) < 4 {
		return nil
	}
	q1, _, q3 := stats.Quartiles(data)
	iqr := q3 - q1
	if iqr == 0 {
		return nil
	}
	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr

	var results []models.OutlierResult
	for i, v := range data {
		var score float64
		var direction models.OutlierDirection
		switch {
		case v < lower:
			score = (lower - v) / iqr
			direction = models.DirectionLow
		case v > upper:
			score = (v - upper) / iqr
			direction = models.DirectionHigh
		default:
			continue
		}
		results = append(results, models.OutlierResult{
			Index:     i,
			Value:     v,
			Score:     score,
			Method:    models.MethodIQR,
			Direction: direction,
			Threshold: multiplier,
		})
	}
	sortByScore(results)
	return results
}

func directionOf(signedScore float64) models.OutlierDirection {
	if signedScore < 0 {
		return models.DirectionLow
	}
	return models.DirectionHigh
}

// sortByScore orders results by descending score, then by index for a
// deterministic tiebreak.
func sortByScore(results []models.OutlierResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})
}
