package predictor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Skufu/vitalsight/internal/patient"
)

// Artifact is a decision-list model loaded from disk. Rules are checked in
// file order and the first full match supplies the output.
type Artifact struct {
	Version string `yaml:"version"`
	Default Result `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

type Rule struct {
	ID     string    `yaml:"id"`
	When   Condition `yaml:"when"`
	Output Result    `yaml:"output"`
}

// Condition fields are optional; an unset field always matches.
type Condition struct {
	SymptomsAny  []string `yaml:"symptoms_any"`
	HistoryAny   []string `yaml:"history_any"`
	Gender       string   `yaml:"gender"`
	ExerciseAny  []string `yaml:"exercise_any"`
	LifestyleAny []string `yaml:"lifestyle_any"`
	Smoker       *bool    `yaml:"smoker"`
	Drinker      *bool    `yaml:"drinker"`

	MinAge         *int     `yaml:"min_age"`
	MaxAge         *int     `yaml:"max_age"`
	MinHeartRate   *int     `yaml:"min_heart_rate"`
	MaxHeartRate   *int     `yaml:"max_heart_rate"`
	MinSleepHours  *int     `yaml:"min_sleep_hours"`
	MaxSleepHours  *int     `yaml:"max_sleep_hours"`
	MinSystolic    *int     `yaml:"min_systolic"`
	MinDiastolic   *int     `yaml:"min_diastolic"`
	MinWeight      *int     `yaml:"min_weight"`
	MinTemperature *float64 `yaml:"min_temperature"`
	MaxTemperature *float64 `yaml:"max_temperature"`
}

// LoadArtifact reads and validates a model file.
func LoadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return ParseArtifact(raw)
}

func ParseArtifact(raw []byte) (*Artifact, error) {
	var a Artifact
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if strings.TrimSpace(a.Default.Report) == "" {
		return nil, fmt.Errorf("parse model: default report is required")
	}
	for i, r := range a.Rules {
		if strings.TrimSpace(r.Output.Report) == "" {
			return nil, fmt.Errorf("parse model: rule %d (%s) has no report", i, r.ID)
		}
	}
	return &a, nil
}

func (a *Artifact) Predict(_ context.Context, in patient.Input) (Result, error) {
	for _, r := range a.Rules {
		if r.When.matches(in) {
			return r.Output, nil
		}
	}
	return a.Default, nil
}

func (c Condition) matches(in patient.Input) bool {
	switch {
	case len(c.SymptomsAny) > 0 && !containsAnyToken(in.Symptoms, c.SymptomsAny):
		return false
	case len(c.HistoryAny) > 0 && !containsAnyToken(in.MedicalHistory, c.HistoryAny):
		return false
	case c.Gender != "" && !strings.EqualFold(strings.TrimSpace(in.Gender), c.Gender):
		return false
	case len(c.ExerciseAny) > 0 && !equalsAny(in.Exercise, c.ExerciseAny):
		return false
	case len(c.LifestyleAny) > 0 && !equalsAny(in.Lifestyle, c.LifestyleAny):
		return false
	case c.Smoker != nil && *c.Smoker != in.IsSmoker():
		return false
	case c.Drinker != nil && *c.Drinker != in.IsDrinker():
		return false
	}

	return atLeast(in.Age, c.MinAge) && atMost(in.Age, c.MaxAge) &&
		atLeast(in.HeartRate, c.MinHeartRate) && atMost(in.HeartRate, c.MaxHeartRate) &&
		atLeast(in.SleepHours, c.MinSleepHours) && atMost(in.SleepHours, c.MaxSleepHours) &&
		atLeast(in.SystolicPressure, c.MinSystolic) &&
		atLeast(in.DiastolicPressure, c.MinDiastolic) &&
		atLeast(in.Weight, c.MinWeight) &&
		atLeast(in.BodyTemperature, c.MinTemperature) && atMost(in.BodyTemperature, c.MaxTemperature)
}

func atLeast[T int | float64](v T, bound *T) bool {
	return bound == nil || v >= *bound
}

func atMost[T int | float64](v T, bound *T) bool {
	return bound == nil || v <= *bound
}

// containsAnyToken splits free text on commas and semicolons and reports
// whether any token contains one of the needles.
func containsAnyToken(text string, needles []string) bool {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || r == ';'
	})
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		for _, n := range needles {
			if strings.Contains(t, strings.ToLower(n)) {
				return true
			}
		}
	}
	return false
}

func equalsAny(value string, options []string) bool {
	value = strings.TrimSpace(value)
	for _, o := range options {
		if strings.EqualFold(value, o) {
			return true
		}
	}
	return false
}
