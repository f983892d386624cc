// Package patient turns a submitted intake form into a typed Input record.
package patient

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Skufu/vitalsight/internal/lifestyle"
)

// Form field names. Order matches the schema the prediction model was
// trained on.
const (
	FieldAge               = "Age"
	FieldGender            = "Gender"
	FieldHeartRate         = "HeartRate"
	FieldSymptoms          = "Symptoms"
	FieldMedicalHistory    = "MedicalHistory"
	FieldSmoker            = "Smoker"
	FieldDrinker           = "Drinker"
	FieldExercise          = "Exercise"
	FieldSleepHours        = "SleepHours"
	FieldWeight            = "Weight"
	FieldBodyTemperature   = "BodyTemperature"
	FieldLifestyle         = "Lifestyle"
	FieldSystolicPressure  = "SystolicPressure"
	FieldDiastolicPressure = "DiastolicPressure"
	FieldSmokerDays        = "SmokerDays"
	FieldDrinkerDays       = "DrinkerDays"
)

var requiredFields = []string{
	FieldAge, FieldGender, FieldHeartRate, FieldSymptoms, FieldMedicalHistory,
	FieldSmoker, FieldDrinker, FieldExercise, FieldSleepHours, FieldWeight,
	FieldBodyTemperature, FieldLifestyle, FieldSystolicPressure, FieldDiastolicPressure,
}

// RequiredFields returns the mandatory form fields in schema order.
func RequiredFields() []string {
	return append([]string(nil), requiredFields...)
}

type Input struct {
	Age               int     `json:"age"`
	Gender            string  `json:"gender"`
	HeartRate         int     `json:"heartRate"`
	Symptoms          string  `json:"symptoms"`
	MedicalHistory    string  `json:"medicalHistory"`
	Smoker            string  `json:"smoker"`
	Drinker           string  `json:"drinker"`
	Exercise          string  `json:"exercise"`
	SleepHours        int     `json:"sleepHours"`
	Weight            int     `json:"weight"`
	BodyTemperature   float64 `json:"bodyTemperature"`
	Lifestyle         string  `json:"lifestyle"`
	SystolicPressure  int     `json:"systolicPressure"`
	DiastolicPressure int     `json:"diastolicPressure"`
	SmokerDays        int     `json:"smokerDays"`
	DrinkerDays       int     `json:"drinkerDays"`
}

func (in Input) IsSmoker() bool  { return in.Smoker == "1" }
func (in Input) IsDrinker() bool { return in.Drinker == "1" }

// Extract validates every mandatory field before returning. When anything is
// wrong the error is a FieldErrors holding one *MissingFieldError or
// *TypeCoercionError per bad field, in schema order.
func Extract(form url.Values) (Input, error) {
	p := fieldParser{form: form}

	in := Input{
		Age:               p.integer(FieldAge),
		Gender:            p.text(FieldGender),
		HeartRate:         p.integer(FieldHeartRate),
		Symptoms:          p.text(FieldSymptoms),
		MedicalHistory:    p.text(FieldMedicalHistory),
		Smoker:            p.text(FieldSmoker),
		Drinker:           p.text(FieldDrinker),
		Exercise:          p.text(FieldExercise),
		SleepHours:        p.integer(FieldSleepHours),
		Weight:            p.integer(FieldWeight),
		BodyTemperature:   p.float(FieldBodyTemperature),
		Lifestyle:         p.text(FieldLifestyle),
		SystolicPressure:  p.integer(FieldSystolicPressure),
		DiastolicPressure: p.integer(FieldDiastolicPressure),
		SmokerDays:        lifestyle.ParseDays(optional(form, FieldSmokerDays)),
		DrinkerDays:       lifestyle.ParseDays(optional(form, FieldDrinkerDays)),
	}

	if len(p.errs) > 0 {
		return Input{}, p.errs
	}
	return in, nil
}

type fieldParser struct {
	form url.Values
	errs FieldErrors
}

func (p *fieldParser) lookup(field string) (string, bool) {
	values, ok := p.form[field]
	if !ok || len(values) == 0 {
		p.errs = append(p.errs, &MissingFieldError{Field: field})
		return "", false
	}
	return values[0], true
}

func (p *fieldParser) text(field string) string {
	v, _ := p.lookup(field)
	return v
}

func (p *fieldParser) integer(field string) int {
	raw, ok := p.lookup(field)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.errs = append(p.errs, &TypeCoercionError{Field: field, Value: raw, Kind: KindInteger, Err: err})
		return 0
	}
	return n
}

func (p *fieldParser) float(field string) float64 {
	raw, ok := p.lookup(field)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		p.errs = append(p.errs, &TypeCoercionError{Field: field, Value: raw, Kind: KindFloat, Err: err})
		return 0
	}
	return f
}

func optional(form url.Values, field string) string {
	if values, ok := form[field]; ok && len(values) > 0 {
		return values[0]
	}
	return "0"
}
