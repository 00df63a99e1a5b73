// Package grc wraps the numeric detectors with GRC business context: scan
// passes over entity metric histories produce anomaly records that carry
// entity identity, severity and a human-readable message, plus pure
// acknowledge/resolve transformers the workflow layer applies.
package grc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
	"github.com/jasonsutter87/VeilVault-sub001/pkg/outliers"
)

// Anomaly combines detector output with the business context the audit team
// works from. Acknowledgement and resolution are applied by the caller via
// the transformer functions below; the engine never mutates a record.
type Anomaly struct {
	ID         string                  `json:"id"`
	EntityType string                  `json:"entity_type"`
	EntityID   string                  `json:"entity_id"`
	Index      int                     `json:"index"`
	Value      float64                 `json:"value"`
	Score      float64                 `json:"score"`
	Method     models.DetectionMethod  `json:"method"`
	Direction  models.OutlierDirection `json:"direction"`
	Severity   models.Severity         `json:"severity"`
	Message    string                  `json:"message"`
	DetectedAt time.Time               `json:"detected_at"`

	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Resolved       bool       `json:"resolved"`
	ResolvedBy     string     `json:"resolved_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolutionNote string     `json:"resolution_note,omitempty"`
}

// ScanOptions configures a detection pass over one entity history.
type ScanOptions struct {
	// Sensitivity preset for the ensemble; defaults to medium.
	Sensitivity outliers.Sensitivity
	// MinConfidence for ensemble agreement; defaults to 0.5.
	MinConfidence float64
	// AsOf stamps DetectedAt; callers supply their notion of now.
	AsOf time.Time
	// Logger for scan telemetry; nil gets a default logger.
	Logger *logrus.Logger
}

// Scan runs the ensemble over one entity's metric history and wraps each
// agreed outlier in business context. Record ids are fresh uuids; everything
// else is deterministic for the same input.
func Scan(entityType, entityID string, values []float64, opts ScanOptions) []Anomaly {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}

	results := outliers.DetectEnsemble(values, outliers.EnsembleOptions{
		Sensitivity:   opts.Sensitivity,
		MinConfidence: opts.MinConfidence,
	})

	anomalies := make([]Anomaly, 0, len(results))
	for _, r := range results {
		anomalies = append(anomalies, Anomaly{
			ID:         uuid.NewString(),
			EntityType: entityType,
			EntityID:   entityID,
			Index:      r.Index,
			Value:      r.Value,
			Score:      r.Score,
			Method:     r.Method,
			Direction:  r.Direction,
			Severity:   severityFor(r.Score, r.Threshold),
			Message:    messageFor(entityType, r),
			DetectedAt: opts.AsOf,
		})
	}

	logger.WithFields(logrus.Fields{
		"entity_type": entityType,
		"entity_id":   entityID,
		"points":      len(values),
		"anomalies":   len(anomalies),
	}).Debug("anomaly scan complete")

	return anomalies
}

// severityFor maps the score/threshold ratio onto the triage ladder.
func severityFor(score, threshold float64) models.Severity {
	if threshold <= 0 {
		return models.SeverityLow
	}
	ratio := score / threshold
	switch {
	case ratio >= 3.0:
		return models.SeverityCritical
	case ratio >= 2.0:
		return models.SeverityHigh
	case ratio >= 1.5:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func messageFor(entityType string, r models.EnsembleResult) string {
	side := "above"
	if r.Direction == models.DirectionLow {
		side = "below"
	}
	return fmt.Sprintf("%s metric value %.2f at period %d is unusually %s its expected range (score %.2f, %d methods agree)",
		entityType, r.Value, r.Index, side, r.Score, len(r.Methods))
}

// Acknowledge returns a copy of the anomaly marked acknowledged. The input
// record is untouched.
func Acknowledge(a Anomaly, by string, at time.Time) Anomaly {
	a.Acknowledged = true
	a.AcknowledgedBy = by
	t := at
	a.AcknowledgedAt = &t
	return a
}

// Resolve returns a copy of the anomaly marked resolved with a note.
func Resolve(a Anomaly, by, note string, at time.Time) Anomaly {
	a.Resolved = true
	a.ResolvedBy = by
	a.ResolutionNote = note
	t := at
	a.ResolvedAt = &t
	return a
}
