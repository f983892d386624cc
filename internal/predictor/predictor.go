// Package predictor wraps the pre-trained model that turns a patient record
// into the four report texts.
package predictor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skufu/vitalsight/internal/patient"
)

// Result holds the model output in its fixed positional order.
type Result struct {
	Report      string `json:"report" yaml:"report"`
	Suggestions string `json:"suggestions" yaml:"suggestions"`
	Habit       string `json:"habit" yaml:"habit"`
	Food        string `json:"food" yaml:"food"`
}

// Model is anything that can score a patient record. Implementations must be
// safe for concurrent use and must not mutate their state after construction.
type Model interface {
	Predict(ctx context.Context, in patient.Input) (Result, error)
}

// ModelError marks a failure inside the model as opposed to bad input.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s model: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// Adapter is the single entry point handlers use to run a prediction.
type Adapter struct {
	model Model
	name  string
}

func NewAdapter(name string, model Model) *Adapter {
	return &Adapter{model: model, name: name}
}

func (a *Adapter) Name() string { return a.name }

// Predict runs the model and trims surrounding whitespace from every field.
func (a *Adapter) Predict(ctx context.Context, in patient.Input) (Result, error) {
	res, err := a.model.Predict(ctx, in)
	if err != nil {
		return Result{}, &ModelError{Model: a.name, Err: err}
	}

	return Result{
		Report:      strings.TrimSpace(res.Report),
		Suggestions: strings.TrimSpace(res.Suggestions),
		Habit:       strings.TrimSpace(res.Habit),
		Food:        strings.TrimSpace(res.Food),
	}, nil
}
