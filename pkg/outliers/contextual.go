package outliers

import (
	"math"
	"time"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
)

// Cohorts smaller than this cannot support a meaningful z-score and are
// skipped.
const minCohortSize = 3

// DetectByCategory partitions the series by the aligned category labels and
// z-scores each point within its own cohort. A value that is ordinary
// globally can be anomalous for its category (e.g. a quiet weekend entity
// suddenly posting weekday-level volume). Categories shorter than the data
// leave trailing points unexamined; cohorts under 3 members are skipped.
func DetectByCategory(data []float64, categories []string, threshold float64) []models.OutlierResult {
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}
	n := len(data)
	if len(categories) < n {
		n = len(categories)
	}

	cohorts := make(map[string][]int)
	for i := 0; i < n; i++ {
		cohorts[categories[i]] = append(cohorts[categories[i]], i)
	}

	best := make(map[int]models.OutlierResult)
	for _, indices := range cohorts {
		if len(indices) < minCohortSize {
			continue
		}
		values := make([]float64, len(indices))
		for j, idx := range indices {
			values[j] = data[idx]
		}
		sd := stats.StdDev(values)
		if sd == 0 {
			continue
		}
		mean := stats.Mean(values)
		for j, idx := range indices {
			z := (values[j] - mean) / sd
			if math.Abs(z) <= threshold {
				continue
			}
			candidate := models.OutlierResult{
				Index:     idx,
				Value:     values[j],
				Score:     math.Abs(z),
				Method:    models.MethodContextual,
				Direction: directionOf(z),
				Threshold: threshold,
			}
			// Keep the highest-scoring explanation per index.
			if existing, ok := best[idx]; !ok || candidate.Score > existing.Score {
				best[idx] = candidate
			}
		}
	}

	results := make([]models.OutlierResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sortByScore(results)
	return results
}

// DetectByWeekday cohorts the series by day of week of the aligned
// timestamps, catching values that are normal for the series but abnormal
// for that weekday.
func DetectByWeekday(data []float64, timestamps []time.Time, threshold float64) []models.OutlierResult {
	n := len(data)
	if len(timestamps) < n {
		n = len(timestamps)
	}
	categories := make([]string, n)
	for i := 0; i < n; i++ {
		categories[i] = timestamps[i].Weekday().String()
	}
	return DetectByCategory(data[:n], categories, threshold)
}
