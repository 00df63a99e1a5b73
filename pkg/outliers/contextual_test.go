package outliers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonsutter87/VeilVault-sub001/pkg/models"
)

func TestDetectByCategory(t *testing.T) {
	// 30 is unremarkable globally but extreme within the "ops" cohort.
	data := []float64{10, 10, 10, 10, 10, 10, 10, 10, 30, 100, 105, 95, 100}
	categories := []string{"ops", "ops", "ops", "ops", "ops", "ops", "ops", "ops", "ops",
		"finance", "finance", "finance", "finance"}

	results := DetectByCategory(data, categories, 2.5)

	require.Len(t, results, 1)
	assert.Equal(t, 8, results[0].Index)
	assert.Equal(t, 30.0, results[0].Value)
	assert.Equal(t, models.DirectionHigh, results[0].Direction)
}

func TestDetectByCategorySmallCohortsSkipped(t *testing.T) {
	data := []float64{10, 10, 500, 10}
	categories := []string{"a", "a", "b", "a"}
	// Cohort b has one member, cohort a is flat.
	assert.Empty(t, DetectByCategory(data, categories, 2.5))
}

func TestDetectByWeekday(t *testing.T) {
	// Nine Mondays, one with a burst of accesses.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) // a Monday
	data := make([]float64, 9)
	timestamps := make([]time.Time, 9)
	for i := range data {
		data[i] = 10
		timestamps[i] = start.AddDate(0, 0, 7*i)
	}
	data[4] = 30

	results := DetectByWeekday(data, timestamps, 2.5)

	require.Len(t, results, 1)
	assert.Equal(t, 4, results[0].Index)
	assert.Equal(t, models.DirectionHigh, results[0].Direction)
}
