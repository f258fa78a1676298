// Package advisor implements the slot recommendation service: a synthetic
// training-dataset generator, a small nearest-neighbour classifier with file
// persistence, and an explicitly-owned Advisor service wrapping them.
package advisor

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
)

// Feature ranges accepted by the advisor.
const (
	MinArea    = 1
	MaxArea    = 4
	MinWeekday = 0
	MaxWeekday = 6
	MinRate    = 0
	MaxRate    = 100
)

// Labeling thresholds on the past success rate. These are the exact
// thresholds the training data is labeled with, and therefore the behavior
// any heuristic fallback must reproduce.
const (
	MorningRateThreshold   = 80
	AfternoonRateThreshold = 60
)

// DefaultDatasetRounds is how many labeled rows are generated per
// (area, weekday) pair.
const DefaultDatasetRounds = 50

// areaRateBands gives the per-area success-rate band the synthetic data is
// drawn from. Areas differ in how reliable past deliveries have been.
var areaRateBands = map[int][2]int{
	1: {70, 100},
	2: {50, 85},
	3: {60, 90},
	4: {40, 75},
}

// Sample is one labeled training row.
type Sample struct {
	Area            int           `json:"area"`
	Weekday         int           `json:"weekday"`
	PastSuccessRate int           `json:"past_success_rate"`
	PreferredSlot   delivery.Slot `json:"preferred_slot"`
}

// LabelSlot applies the labeling thresholds to a past success rate:
// rate >= 80 Morning, 60 <= rate < 80 Afternoon, rate < 60 Evening.
func LabelSlot(rate int) delivery.Slot {
	switch {
	case rate >= MorningRateThreshold:
		return delivery.Morning
	case rate >= AfternoonRateThreshold:
		return delivery.Afternoon
	default:
		return delivery.Evening
	}
}

// GenerateDataset produces the synthetic training set: rounds passes over
// every (area, weekday) pair, each row drawing a success rate from the
// area's band and labeling it with LabelSlot. The same seed always yields
// the same dataset.
func GenerateDataset(seed int64, rounds int) []Sample {
	if rounds <= 0 {
		rounds = DefaultDatasetRounds
	}

	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, 0, rounds*MaxArea*(MaxWeekday+1))

	for range rounds {
		for area := MinArea; area <= MaxArea; area++ {
			band := areaRateBands[area]
			for weekday := MinWeekday; weekday <= MaxWeekday; weekday++ {
				rate := band[0] + rng.Intn(band[1]-band[0]+1)
				samples = append(samples, Sample{
					Area:            area,
					Weekday:         weekday,
					PastSuccessRate: rate,
					PreferredSlot:   LabelSlot(rate),
				})
			}
		}
	}

	return samples
}

// WriteDatasetCSV encodes samples with a header row of
// area,weekday,past_success_rate,preferred_slot.
func WriteDatasetCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"area", "weekday", "past_success_rate", "preferred_slot"}); err != nil {
		return fmt.Errorf("writing dataset header: %w", err)
	}

	for _, s := range samples {
		record := []string{
			strconv.Itoa(s.Area),
			strconv.Itoa(s.Weekday),
			strconv.Itoa(s.PastSuccessRate),
			s.PreferredSlot.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing dataset row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadDatasetCSV decodes a dataset written by WriteDatasetCSV.
func ReadDatasetCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	if len(header) != 4 {
		return nil, errs.NewValueIsInvalidError("dataset header")
	}

	var samples []Sample
	for {
		record, readErr := cr.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("reading dataset row: %w", readErr)
		}

		sample, parseErr := parseSample(record)
		if parseErr != nil {
			return nil, parseErr
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func parseSample(record []string) (Sample, error) {
	area, err := strconv.Atoi(record[0])
	if err != nil {
		return Sample{}, errs.NewValueIsInvalidErrorWithCause("area", err)
	}
	weekday, err := strconv.Atoi(record[1])
	if err != nil {
		return Sample{}, errs.NewValueIsInvalidErrorWithCause("weekday", err)
	}
	rate, err := strconv.Atoi(record[2])
	if err != nil {
		return Sample{}, errs.NewValueIsInvalidErrorWithCause("past_success_rate", err)
	}
	slot, err := delivery.SlotFromString(record[3])
	if err != nil {
		return Sample{}, err
	}

	if area < MinArea || area > MaxArea {
		return Sample{}, errs.NewValueIsOutOfRangeError("area", area, MinArea, MaxArea)
	}
	if weekday < MinWeekday || weekday > MaxWeekday {
		return Sample{}, errs.NewValueIsOutOfRangeError("weekday", weekday, MinWeekday, MaxWeekday)
	}
	if rate < MinRate || rate > MaxRate {
		return Sample{}, errs.NewValueIsOutOfRangeError("past_success_rate", rate, MinRate, MaxRate)
	}

	return Sample{Area: area, Weekday: weekday, PastSuccessRate: rate, PreferredSlot: slot}, nil
}
