package grc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

var scanTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func riskHistoryWithSpike() []float64 {
	return []float64{
		10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		50,
	}
}

func TestScan(t *testing.T) {
	anomalies := Scan("risk", "RSK-101", riskHistoryWithSpike(), ScanOptions{AsOf: scanTime})

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "risk", a.EntityType)
	assert.Equal(t, "RSK-101", a.EntityID)
	assert.Equal(t, 20, a.Index)
	assert.Equal(t, 50.0, a.Value)
	assert.Equal(t, models.DirectionHigh, a.Direction)
	assert.Equal(t, scanTime, a.DetectedAt)
	assert.Contains(t, a.Message, "unusually above")
	assert.False(t, a.Acknowledged)
	assert.False(t, a.Resolved)
}

func TestScanCleanHistory(t *testing.T) {
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8, 10.1, 9.9}
	assert.Empty(t, Scan("control", "CTL-7", data, ScanOptions{AsOf: scanTime}))
}

func TestScanUniqueIDs(t *testing.T) {
	data := []float64{10, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0, 10.2, 9.8,
		10.1, 9.9, 10.0, 10.2, 9.8, 10.1, 9.9, 10.3, 9.7, 10.0,
		50, -55}
	anomalies := Scan("risk", "RSK-2", data, ScanOptions{MinConfidence: 0.2, AsOf: scanTime})

	require.GreaterOrEqual(t, len(anomalies), 2)
	seen := make(map[string]bool)
	for _, a := range anomalies {
		assert.False(t, seen[a.ID])
		seen[a.ID] = true
	}
}

func TestSeverityLadder(t *testing.T) {
	assert.Equal(t, models.SeverityLow, severityFor(3.0, 3.0))
	assert.Equal(t, models.SeverityMedium, severityFor(4.5, 3.0))
	assert.Equal(t, models.SeverityHigh, severityFor(6.0, 3.0))
	assert.Equal(t, models.SeverityCritical, severityFor(9.0, 3.0))
	// A zero threshold cannot be ratioed.
	assert.Equal(t, models.SeverityLow, severityFor(10.0, 0))
}

func TestAcknowledgeReturnsCopy(t *testing.T) {
	original := Anomaly{ID: "a1", EntityID: "RSK-1"}
	at := scanTime.Add(time.Hour)

	acked := Acknowledge(original, "lead.auditor", at)

	assert.True(t, acked.Acknowledged)
	assert.Equal(t, "lead.auditor", acked.AcknowledgedBy)
	require.NotNil(t, acked.AcknowledgedAt)
	assert.Equal(t, at, *acked.AcknowledgedAt)

	// The input record is untouched.
	assert.False(t, original.Acknowledged)
	assert.Nil(t, original.AcknowledgedAt)
}

func TestResolveReturnsCopy(t *testing.T) {
	original := Anomaly{ID: "a2", EntityID: "RSK-1"}
	at := scanTime.Add(2 * time.Hour)

	resolved := Resolve(original, "risk.owner", "data entry error, corrected", at)

	assert.True(t, resolved.Resolved)
	assert.Equal(t, "risk.owner", resolved.ResolvedBy)
	assert.Equal(t, "data entry error, corrected", resolved.ResolutionNote)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, at, *resolved.ResolvedAt)

	assert.False(t, original.Resolved)
	assert.Nil(t, original.ResolvedAt)
}
