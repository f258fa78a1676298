package advisor

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
)

// DefaultNeighbors is the default k for the nearest-neighbour vote.
const DefaultNeighbors = 25

// Feature weights for the distance function. The labeling signal lives
// almost entirely in the success rate, so rate distance dominates; area and
// weekday act as tie-breakers between equally close rates.
const (
	areaMismatchPenalty = 2.0
	weekdayStepPenalty  = 0.5
)

// Model is a k-nearest-neighbour classifier over
// (area, weekday, past_success_rate) rows. Prediction is a majority vote
// among the k closest training samples; confidence is the winning class's
// share of the vote, i.e. the top-class probability.
//
// The model is deterministic: for a fixed training set and fixed input it
// always returns the same slot and confidence.
type Model struct {
	K       int      `json:"k"`
	Samples []Sample `json:"samples"`
}

// Train builds a model from labeled samples.
func Train(samples []Sample, k int) (*Model, error) {
	if len(samples) == 0 {
		return nil, errs.NewValueIsRequiredError("training samples")
	}
	if k <= 0 {
		k = DefaultNeighbors
	}
	if k > len(samples) {
		k = len(samples)
	}

	trained := make([]Sample, len(samples))
	copy(trained, samples)
	return &Model{K: k, Samples: trained}, nil
}

// Predict returns the recommended slot for the given features together with
// the top-class probability of the vote.
func (m *Model) Predict(area, weekday, rate int) (delivery.Slot, float64) {
	type neighbor struct {
		index    int
		distance float64
	}

	neighbors := make([]neighbor, len(m.Samples))
	for i, s := range m.Samples {
		neighbors[i] = neighbor{index: i, distance: m.distance(s, area, weekday, rate)}
	}

	// Stable ordering keeps prediction deterministic when distances tie.
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	votes := make(map[delivery.Slot]int)
	for _, n := range neighbors[:m.K] {
		votes[m.Samples[n.index].PreferredSlot]++
	}

	best := delivery.Morning
	for _, slot := range []delivery.Slot{delivery.Morning, delivery.Afternoon, delivery.Evening} {
		if votes[slot] > votes[best] {
			best = slot
		}
	}

	return best, float64(votes[best]) / float64(m.K)
}

func (m *Model) distance(s Sample, area, weekday, rate int) float64 {
	d := float64(abs(s.PastSuccessRate - rate))
	if s.Area != area {
		d += areaMismatchPenalty
	}
	d += weekdayStepPenalty * float64(circularWeekdayDiff(s.Weekday, weekday))
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func circularWeekdayDiff(a, b int) int {
	d := abs(a - b)
	if d > 3 {
		d = 7 - d
	}
	return d
}

// Save persists the model as JSON at the given path.
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding slot model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing slot model: %w", err)
	}
	return nil
}

// LoadModel reads a model persisted by Save.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading slot model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding slot model: %w", err)
	}
	if m.K <= 0 || len(m.Samples) == 0 || m.K > len(m.Samples) {
		return nil, errs.NewValueIsInvalidError("slot model file")
	}

	return &m, nil
}
