package outliers

import (
	"sort"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

// Sensitivity selects a preset of per-method thresholds for the ensemble.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// sensitivityPreset holds the per-method thresholds for one tier. The
// numbers are calibration data shared with collaborator alerting config.
type sensitivityPreset struct {
	zscore    float64
	mad       float64
	iqr       float64
	isolation float64
}

var sensitivityPresets = map[Sensitivity]sensitivityPreset{
	SensitivityLow:    {zscore: 3.5, mad: 4.0, iqr: 2.0, isolation: 2.5},
	SensitivityMedium: {zscore: 3.0, mad: 3.5, iqr: 1.5, isolation: 2.0},
	SensitivityHigh:   {zscore: 2.5, mad: 3.0, iqr: 1.0, isolation: 1.5},
}

// EnsembleOptions configures the voting pass. Zero values fall back to the
// documented defaults.
type EnsembleOptions struct {
	// Methods to run; defaults to zscore, iqr, mad, grubbs and isolation.
	Methods []models.DetectionMethod
	// Sensitivity preset; defaults to medium.
	Sensitivity Sensitivity
	// MinConfidence is the fraction of requested methods that must agree on
	// a point before it is reported; defaults to 0.5.
	MinConfidence float64
	// MaxGrubbsOutliers caps the iterative Grubbs removals; defaults to 5.
	MaxGrubbsOutliers int
}

// DefaultEnsembleMethods is the standard voting panel.
var DefaultEnsembleMethods = []models.DetectionMethod{
	models.MethodZScore,
	models.MethodIQR,
	models.MethodModifiedZ,
	models.MethodGrubbs,
	models.MethodIsolation,
}

// DetectEnsemble runs the requested detectors with sensitivity-scaled
// thresholds and reports the points where enough methods agree. Confidence
// is the fraction of requested methods that flagged the point; results are
// sorted by confidence, then score, descending.
func DetectEnsemble(data []float64, opts EnsembleOptions) []models.EnsembleResult {
	methods := opts.Methods
	if len(methods) == 0 {
		methods = DefaultEnsembleMethods
	}
	preset, ok := sensitivityPresets[opts.Sensitivity]
	if !ok {
		preset = sensitivityPresets[SensitivityMedium]
	}
	minConfidence := opts.MinConfidence
	if minConfidence <= 0 {
		minConfidence = 0.5
	}
	maxGrubbs := opts.MaxGrubbsOutliers
	if maxGrubbs <= 0 {
		maxGrubbs = 5
	}

	type vote struct {
		best    models.OutlierResult
		methods []models.DetectionMethod
	}
	votes := make(map[int]*vote)

	record := func(results []models.OutlierResult) {
		for _, r := range results {
			v, exists := votes[r.Index]
			if !exists {
				v = &vote{best: r}
				votes[r.Index] = v
			} else if r.Score > v.best.Score {
				v.best = r
			}
			v.methods = append(v.methods, r.Method)
		}
	}

	for _, m := range methods {
		switch m {
		case models.MethodZScore:
			record(DetectZScore(data, preset.zscore))
		case models.MethodIQR:
			record(DetectIQR(data, preset.iqr))
		case models.MethodModifiedZ:
			record(DetectModifiedZScore(data, preset.mad))
		case models.MethodGrubbs:
			record(DetectGrubbsIterative(data, maxGrubbs))
		case models.MethodIsolation:
			record(DetectIsolation(data, preset.isolation))
		}
	}

	var results []models.EnsembleResult
	for _, v := range votes {
		confidence := float64(len(v.methods)) / float64(len(methods))
		if confidence < minConfidence {
			continue
		}
		results = append(results, models.EnsembleResult{
			OutlierResult: v.best,
			Confidence:    confidence,
			Methods:       v.methods,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})
	return results
}

// SummarizeAnomalies aggregates a detection pass by method and direction and
// reports the fraction of the series that was flagged.
func SummarizeAnomalies(results []models.OutlierResult, seriesLength int) models.AnomalySummary {
	summary := models.AnomalySummary{
		Total:       len(results),
		ByMethod:    make(map[models.DetectionMethod]int),
		ByDirection: make(map[models.OutlierDirection]int),
	}
	seen := make(map[int]bool)
	for _, r := range results {
		summary.ByMethod[r.Method]++
		summary.ByDirection[r.Direction]++
		seen[r.Index] = true
	}
	if seriesLength > 0 {
		summary.PercentFlagged = float64(len(seen)) / float64(seriesLength) * 100
	}
	return summary
}
