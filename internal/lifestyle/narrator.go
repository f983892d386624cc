package lifestyle

import (
	"fmt"
	"strconv"
	"strings"
)

// NoRiskText is returned when neither habit produces a finding.
const NoRiskText = "No severe historical lifestyle risks detected from current inputs."

const daysPerYear = 365.25

type Habit string

const (
	HabitSmoking  Habit = "smoking"
	HabitDrinking Habit = "drinking"
)

type Tier string

const (
	TierEarly    Tier = "Early Risk"
	TierModerate Tier = "Moderate Risk"
	TierHigh     Tier = "High Risk"
)

// Finding is one risk paragraph for a single habit.
type Finding struct {
	Habit Habit   `json:"habit"`
	Tier  Tier    `json:"tier"`
	Days  int     `json:"days"`
	Years float64 `json:"years"`
	Text  string  `json:"text"`
}

// Assess returns the smoker finding followed by the drinker finding. A habit
// only yields a finding when its flag is set and days is positive.
func Assess(isSmoker bool, smokerDays int, isDrinker bool, drinkerDays int) []Finding {
	findings := []Finding{}
	if isSmoker && smokerDays > 0 {
		findings = append(findings, assessHabit(HabitSmoking, smokerDays))
	}
	if isDrinker && drinkerDays > 0 {
		findings = append(findings, assessHabit(HabitDrinking, drinkerDays))
	}
	return findings
}

// Narrate joins the findings of Assess with a blank line, or returns
// NoRiskText when there are none.
func Narrate(isSmoker bool, smokerDays int, isDrinker bool, drinkerDays int) string {
	findings := Assess(isSmoker, smokerDays, isDrinker, drinkerDays)
	if len(findings) == 0 {
		return NoRiskText
	}

	paragraphs := make([]string, 0, len(findings))
	for _, f := range findings {
		paragraphs = append(paragraphs, f.Text)
	}
	return strings.Join(paragraphs, "\n\n")
}

func assessHabit(habit Habit, days int) Finding {
	years := float64(days) / daysPerYear
	tier := tierFor(years)
	return Finding{
		Habit: habit,
		Tier:  tier,
		Days:  days,
		Years: years,
		Text:  narrative(habit, tier, days, years),
	}
}

func tierFor(years float64) Tier {
	switch {
	case years > 5:
		return TierHigh
	case years > 1:
		return TierModerate
	default:
		return TierEarly
	}
}

func narrative(habit Habit, tier Tier, days int, years float64) string {
	switch habit {
	case HabitSmoking:
		switch tier {
		case TierHigh:
			return fmt.Sprintf("⚠️ High Risk: Smoking for ~%.1f years drastically increases respiratory and cardiovascular risks. Cumulative lung damage is significant. Immediate cessation is strongly advised.", years)
		case TierModerate:
			return fmt.Sprintf("⚠️ Moderate Risk: Smoking for ~%.1f years has started to impact lung capacity and blood pressure. Quitting now will begin immediate recovery.", years)
		default:
			return fmt.Sprintf("⚠️ Early Risk: You started smoking %d days ago. Quitting right now will reverse nearly all potential damage within a few months.", days)
		}
	default:
		switch tier {
		case TierHigh:
			return fmt.Sprintf("⚠️ High Risk: Regular heavy drinking for ~%.1f years highly impacts liver enzyme function (AST/ALT), resting heart rate, and metabolic rate.", years)
		case TierModerate:
			return fmt.Sprintf("⚠️ Moderate Risk: Regular drinking over ~%.1f years places strain on the liver and digestive system. Reduction is key.", years)
		default:
			return fmt.Sprintf("⚠️ Early Risk: You started drinking %d days ago. Ensure adherence to minimal recommended weekly limits to prevent long-term complications.", days)
		}
	}
}

// ParseDays reads an elapsed-day count. Anything other than a non-empty run
// of ASCII digits that fits in an int counts as zero.
func ParseDays(raw string) int {
	if raw == "" {
		return 0
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0
		}
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return days
}
