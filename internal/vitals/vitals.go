// Package vitals classifies blood pressure, heart rate and sleep duration into
// display bands.
package vitals

import (
	"fmt"

	"github.com/Skufu/vitalsight/internal/patient"
)

type Status string

const (
	StatusNormal             Status = "Normal"
	StatusElevated           Status = "Elevated"
	StatusHypertensionStage1 Status = "Hypertension Stage 1"
	StatusHypertensionStage2 Status = "Hypertension Stage 2"
	StatusTachycardia        Status = "High (Tachycardia)"
	StatusBradycardia        Status = "Low (Bradycardia)"
	StatusInsufficient       Status = "Insufficient"
	StatusOptimal            Status = "Optimal"
	StatusExcessive          Status = "Excessive"
)

const (
	ColorGreen  = "#34d399"
	ColorYellow = "#eab308"
	ColorOrange = "#f97316"
	ColorRed    = "#ef4444"
	ColorBlue   = "#38bdf8"
)

type Summary struct {
	BP          string `json:"bp"`
	BPStatus    Status `json:"bp_status"`
	BPColor     string `json:"bp_color"`
	HR          string `json:"hr"`
	HRStatus    Status `json:"hr_status"`
	HRColor     string `json:"hr_color"`
	Sleep       string `json:"sleep"`
	SleepStatus Status `json:"sleep_status"`
	SleepColor  string `json:"sleep_color"`
}

// Classify is total over its inputs; it never fails.
func Classify(systolic, diastolic, heartRate, sleepHours int) Summary {
	bpStatus, bpColor := bloodPressure(systolic, diastolic)
	hrStatus, hrColor := heartRateBand(heartRate)
	sleepStatus, sleepColor := sleepBand(sleepHours)

	return Summary{
		BP:          fmt.Sprintf("%d/%d", systolic, diastolic),
		BPStatus:    bpStatus,
		BPColor:     bpColor,
		HR:          fmt.Sprintf("%d bpm", heartRate),
		HRStatus:    hrStatus,
		HRColor:     hrColor,
		Sleep:       fmt.Sprintf("%d hrs", sleepHours),
		SleepStatus: sleepStatus,
		SleepColor:  sleepColor,
	}
}

func FromInput(in patient.Input) Summary {
	return Classify(in.SystolicPressure, in.DiastolicPressure, in.HeartRate, in.SleepHours)
}

// bloodPressure checks the stages from most to least severe; first match wins.
func bloodPressure(systolic, diastolic int) (Status, string) {
	switch {
	case systolic >= 140 || diastolic >= 90:
		return StatusHypertensionStage2, ColorRed
	case systolic >= 130 || diastolic >= 80:
		return StatusHypertensionStage1, ColorOrange
	case systolic >= 120 && diastolic < 80:
		return StatusElevated, ColorYellow
	default:
		return StatusNormal, ColorGreen
	}
}

func heartRateBand(bpm int) (Status, string) {
	switch {
	case bpm > 100:
		return StatusTachycardia, ColorOrange
	case bpm < 60:
		return StatusBradycardia, ColorBlue
	default:
		return StatusNormal, ColorGreen
	}
}

func sleepBand(hours int) (Status, string) {
	switch {
	case hours < 7:
		return StatusInsufficient, ColorOrange
	case hours > 9:
		return StatusExcessive, ColorYellow
	default:
		return StatusOptimal, ColorGreen
	}
}
