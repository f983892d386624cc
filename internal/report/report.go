// Package report assembles a health report from a submitted intake form.
package report

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Skufu/vitalsight/internal/lifestyle"
	"github.com/Skufu/vitalsight/internal/metrics"
	"github.com/Skufu/vitalsight/internal/patient"
	"github.com/Skufu/vitalsight/internal/predictor"
	"github.com/Skufu/vitalsight/internal/vitals"
)

type Report struct {
	Report         string              `json:"report"`
	Suggestions    string              `json:"suggestions"`
	Habit          string              `json:"habit"`
	Food           string              `json:"food"`
	Vitals         vitals.Summary      `json:"vitals"`
	RiskAssessment string              `json:"risk_assessment"`
	RiskFindings   []lifestyle.Finding `json:"risk_findings"`
}

type Service struct {
	predictor *predictor.Adapter
	logger    *zap.Logger
}

func NewService(p *predictor.Adapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{predictor: p, logger: logger}
}

// Generate either returns a complete report or fails outright. Form problems
// come back as patient.FieldErrors; model failures as *predictor.ModelError.
func (s *Service) Generate(ctx context.Context, form url.Values) (*Report, error) {
	in, err := patient.Extract(form)
	if err != nil {
		metrics.RecordReport(metrics.OutcomeInvalidInput)
		return nil, err
	}

	start := time.Now()
	res, err := s.predictor.Predict(ctx, in)
	metrics.RecordPrediction(s.predictor.Name(), time.Since(start))
	if err != nil {
		metrics.RecordReport(metrics.OutcomeModelError)
		return nil, err
	}

	summary := vitals.FromInput(in)
	findings := lifestyle.Assess(in.IsSmoker(), in.SmokerDays, in.IsDrinker(), in.DrinkerDays)

	metrics.RecordReport(metrics.OutcomeOK)
	metrics.RecordVitals(string(summary.BPStatus), string(summary.HRStatus), string(summary.SleepStatus))
	for _, f := range findings {
		metrics.RecordLifestyleRisk(string(f.Habit), string(f.Tier))
	}

	s.logger.Debug("report generated",
		zap.String("bp_status", string(summary.BPStatus)),
		zap.String("hr_status", string(summary.HRStatus)),
		zap.String("sleep_status", string(summary.SleepStatus)),
		zap.Int("risk_findings", len(findings)),
	)

	return &Report{
		Report:         res.Report,
		Suggestions:    res.Suggestions,
		Habit:          res.Habit,
		Food:           res.Food,
		Vitals:         summary,
		RiskAssessment: lifestyle.Narrate(in.IsSmoker(), in.SmokerDays, in.IsDrinker(), in.DrinkerDays),
		RiskFindings:   findings,
	}, nil
}

// IsInputError reports whether err is the client's fault.
func IsInputError(err error) bool {
	return patient.IsInputError(err)
}

// IsModelError reports whether err came from the prediction model.
func IsModelError(err error) bool {
	var me *predictor.ModelError
	return errors.As(err, &me)
}
