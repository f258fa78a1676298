package advisor

import (
	"errors"
	"fmt"
	"os"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/pkg/errs"
)

// ErrModelUnavailable indicates the advisor has no usable model and cannot
// retrain because no training data is present. The booking flow absorbs
// this error and proceeds with the sender's chosen slot.
var ErrModelUnavailable = errors.New("slot model unavailable")

// Advisor owns the trained slot model. It is constructed once at process
// start via LoadOrTrain and passed by handle into the lifecycle engine, so
// there is no hidden global model state and retraining is an explicit
// operation.
type Advisor struct {
	model *Model
}

// LoadOrTrain builds an Advisor with an explicit lifecycle:
//
//  1. if a persisted model exists at modelPath, load it;
//  2. otherwise, if training data exists at datasetPath, train a fresh
//     model and persist it to modelPath;
//  3. otherwise fail with ErrModelUnavailable.
func LoadOrTrain(modelPath, datasetPath string) (*Advisor, error) {
	if _, err := os.Stat(modelPath); err == nil {
		model, loadErr := LoadModel(modelPath)
		if loadErr != nil {
			return nil, loadErr
		}
		return &Advisor{model: model}, nil
	}

	f, err := os.Open(datasetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrModelUnavailable
		}
		return nil, fmt.Errorf("opening training dataset: %w", err)
	}
	defer f.Close()

	samples, err := ReadDatasetCSV(f)
	if err != nil {
		return nil, err
	}

	model, err := Train(samples, DefaultNeighbors)
	if err != nil {
		return nil, err
	}
	if err := model.Save(modelPath); err != nil {
		return nil, err
	}

	return &Advisor{model: model}, nil
}

// Recommend maps the given features to a slot recommendation with the
// model's top-class probability as confidence.
func (a *Advisor) Recommend(area, weekday, pastSuccessRate int) (delivery.Slot, float64, error) {
	if area < MinArea || area > MaxArea {
		return delivery.UnknownSlot, 0, errs.NewValueIsOutOfRangeError("area", area, MinArea, MaxArea)
	}
	if weekday < MinWeekday || weekday > MaxWeekday {
		return delivery.UnknownSlot, 0, errs.NewValueIsOutOfRangeError("weekday", weekday, MinWeekday, MaxWeekday)
	}
	if pastSuccessRate < MinRate || pastSuccessRate > MaxRate {
		return delivery.UnknownSlot, 0, errs.NewValueIsOutOfRangeError(
			"pastSuccessRate", pastSuccessRate, MinRate, MaxRate)
	}

	slot, confidence := a.model.Predict(area, weekday, pastSuccessRate)
	return slot, confidence, nil
}

// Unavailable is a SlotAdvisor that always fails with ErrModelUnavailable.
// The composition root falls back to it when LoadOrTrain cannot produce a
// model, keeping the booking path running in degraded mode.
type Unavailable struct{}

// Recommend always fails with ErrModelUnavailable.
func (Unavailable) Recommend(_, _, _ int) (delivery.Slot, float64, error) {
	return delivery.UnknownSlot, 0, ErrModelUnavailable
}
