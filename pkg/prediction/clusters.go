package prediction

import (
	"math"
	"sort"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/stats"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/timeseries"
)

// Clustering requires at least this many observations per member and this
// much average co-movement before a category is reported as a cluster.
const (
	minClusterObservations = 5
	minClusterCorrelation  = 0.3
)

// RiskHistory is one risk's score history with its grouping category.
type RiskHistory struct {
	EntityID string
	Category string
	Scores   []float64
}

// IdentifyRiskClusters groups risks by category and keeps the categories
// whose members' score histories move together (mean absolute pairwise
// Pearson correlation of at least 0.3). Histories of unequal length are
// compared over their most recent common span.
func IdentifyRiskClusters(risks []RiskHistory) []models.RiskCluster {
	byCategory := make(map[string][]RiskHistory)
	var order []string
	for _, r := range risks {
		if len(r.Scores) < minClusterObservations {
			continue
		}
		if _, seen := byCategory[r.Category]; !seen {
			order = append(order, r.Category)
		}
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	var clusters []models.RiskCluster
	for _, category := range order {
		members := byCategory[category]
		if len(members) < 2 {
			continue
		}

		sumAbs, pairs := 0.0, 0
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := alignTails(members[i].Scores, members[j].Scores)
				r, err := stats.Correlation(a, b)
				if err != nil {
					continue
				}
				sumAbs += math.Abs(r)
				pairs++
			}
		}
		if pairs == 0 {
			continue
		}
		meanCorr := sumAbs / float64(pairs)
		if meanCorr < minClusterCorrelation {
			continue
		}

		ids := make([]string, len(members))
		scoreSum := 0.0
		for i, m := range members {
			ids[i] = m.EntityID
			scoreSum += stats.Mean(m.Scores)
		}
		clusters = append(clusters, models.RiskCluster{
			Category:        category,
			EntityIDs:       ids,
			AverageScore:    scoreSum / float64(len(members)),
			MeanCorrelation: meanCorr,
			Trend:           timeseries.DetectTrend(averageSeries(members)),
		})
	}
	return clusters
}

// alignTails truncates both series to their most recent common span.
func alignTails(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[len(a)-n:], b[len(b)-n:]
}

// averageSeries averages member histories point-by-point over the shortest
// common tail, giving the cluster-level series to classify.
func averageSeries(members []RiskHistory) []float64 {
	n := len(members[0].Scores)
	for _, m := range members[1:] {
		if len(m.Scores) < n {
			n = len(m.Scores)
		}
	}
	avg := make([]float64, n)
	for _, m := range members {
		tail := m.Scores[len(m.Scores)-n:]
		for i, v := range tail {
			avg[i] += v
		}
	}
	for i := range avg {
		avg[i] /= float64(len(members))
	}
	return avg
}

// Recommended next steps per alert type, shown verbatim on warning cards.
var recommendedActions = map[models.AlertType]string{
	models.AlertThresholdBreach: "Escalate to the risk owner and review the mitigation plan",
	models.AlertTrendReversal:   "Review the control design and recent test failures",
	models.AlertVolatilitySpike: "Increase monitoring frequency for this metric",
}

var severityRank = map[models.Severity]int{
	models.SeverityCritical: 0,
	models.SeverityHigh:     1,
	models.SeverityMedium:   2,
	models.SeverityLow:      3,
}

// GenerateEarlyWarnings flattens the alerts of a batch of predictions into
// severity-sorted warning records with a recommended action each. Pure
// presentation over alerts the engine already computed.
func GenerateEarlyWarnings(predictions []models.Prediction) []models.EarlyWarning {
	var warnings []models.EarlyWarning
	for _, p := range predictions {
		for _, a := range p.Alerts {
			warnings = append(warnings, models.EarlyWarning{
				EntityID:          p.EntityID,
				Type:              a.Type,
				Severity:          a.Severity,
				Message:           a.Message,
				RecommendedAction: recommendedActions[a.Type],
			})
		}
	}
	sort.SliceStable(warnings, func(i, j int) bool {
		return severityRank[warnings[i].Severity] < severityRank[warnings[j].Severity]
	})
	return warnings
}
