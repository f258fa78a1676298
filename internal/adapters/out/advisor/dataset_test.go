package advisor_test

import (
	"bytes"
	"testing"

	"lastmile/internal/adapters/out/advisor"
	"lastmile/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelSlot(t *testing.T) {
	assert.Equal(t, delivery.Morning, advisor.LabelSlot(100))
	assert.Equal(t, delivery.Morning, advisor.LabelSlot(90))
	assert.Equal(t, delivery.Morning, advisor.LabelSlot(80))
	assert.Equal(t, delivery.Afternoon, advisor.LabelSlot(79))
	assert.Equal(t, delivery.Afternoon, advisor.LabelSlot(60))
	assert.Equal(t, delivery.Evening, advisor.LabelSlot(59))
	assert.Equal(t, delivery.Evening, advisor.LabelSlot(50))
	assert.Equal(t, delivery.Evening, advisor.LabelSlot(0))
}

func TestGenerateDataset(t *testing.T) {
	t.Run("covers every area and weekday within the area bands", func(t *testing.T) {
		samples := advisor.GenerateDataset(42, 10)

		require.Len(t, samples, 10*4*7)

		bands := map[int][2]int{1: {70, 100}, 2: {50, 85}, 3: {60, 90}, 4: {40, 75}}
		seen := make(map[[2]int]bool)
		for _, s := range samples {
			band := bands[s.Area]
			assert.GreaterOrEqual(t, s.PastSuccessRate, band[0])
			assert.LessOrEqual(t, s.PastSuccessRate, band[1])
			assert.Equal(t, advisor.LabelSlot(s.PastSuccessRate), s.PreferredSlot)
			seen[[2]int{s.Area, s.Weekday}] = true
		}
		assert.Len(t, seen, 4*7)
	})

	t.Run("same seed yields the same dataset", func(t *testing.T) {
		first := advisor.GenerateDataset(7, 5)
		second := advisor.GenerateDataset(7, 5)

		assert.Equal(t, first, second)
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		first := advisor.GenerateDataset(1, 5)
		second := advisor.GenerateDataset(2, 5)

		assert.NotEqual(t, first, second)
	})
}

func TestDatasetCSVRoundTrip(t *testing.T) {
	samples := advisor.GenerateDataset(42, 3)

	var buf bytes.Buffer
	require.NoError(t, advisor.WriteDatasetCSV(&buf, samples))

	decoded, err := advisor.ReadDatasetCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, decoded)
}

func TestReadDatasetCSVRejectsBadRows(t *testing.T) {
	t.Run("bad slot name", func(t *testing.T) {
		csv := "area,weekday,past_success_rate,preferred_slot\n1,2,90,Night\n"
		_, err := advisor.ReadDatasetCSV(bytes.NewReader([]byte(csv)))
		require.Error(t, err)
	})

	t.Run("out-of-range area", func(t *testing.T) {
		csv := "area,weekday,past_success_rate,preferred_slot\n9,2,90,Morning\n"
		_, err := advisor.ReadDatasetCSV(bytes.NewReader([]byte(csv)))
		require.Error(t, err)
	})

	t.Run("non-numeric rate", func(t *testing.T) {
		csv := "area,weekday,past_success_rate,preferred_slot\n1,2,high,Morning\n"
		_, err := advisor.ReadDatasetCSV(bytes.NewReader([]byte(csv)))
		require.Error(t, err)
	})
}
