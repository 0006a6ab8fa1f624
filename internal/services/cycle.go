package services

import "time"

// AverageCycleLength is the assumed fixed cycle length in days.
const AverageCycleLength = 28

// The Luteal phase proper covers days 17-28, but the fasting-difficulty
// warning only covers days 21-28. Product has not decided whether the two
// ranges should be unified, so both constants stay.
const (
	lutealPhaseStart          = 17
	lutealFastingWarningStart = 21
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

type CyclePhase struct {
	Phase       string `json:"phase"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CalculateCycleDay maps a last-period-end date to a 1-28 cycle day
// relative to today. Both dates are truncated to midnight first. The
// trailing correction guards the modulo boundary.
func CalculateCycleDay(lastPeriodEnd, today time.Time) int {
	t := truncateToDay(today)
	p := truncateToDay(lastPeriodEnd)

	daysSince := int(t.Sub(p).Hours() / 24)

	cycleDay := (daysSince % AverageCycleLength) + 1
	if cycleDay > AverageCycleLength {
		cycleDay -= AverageCycleLength
	}
	return cycleDay
}

// CyclePhaseFor partitions cycle days into four non-overlapping bands.
func CyclePhaseFor(cycleDay int) CyclePhase {
	switch {
	case cycleDay >= 1 && cycleDay <= 5:
		return CyclePhase{
			Phase:       PhaseMenstrual,
			Name:        "Menstrual Phase",
			Description: "Your period. Rest and recovery are important.",
		}
	case cycleDay >= 6 && cycleDay <= 13:
		return CyclePhase{
			Phase:       PhaseFollicular,
			Name:        "Follicular Phase",
			Description: "Estrogen is rising. Great time for fasting!",
		}
	case cycleDay >= 14 && cycleDay <= 16:
		return CyclePhase{
			Phase:       PhaseOvulation,
			Name:        "Ovulation",
			Description: "Peak fertility. Moderate fasting recommended.",
		}
	default:
		// Days 17-28.
		return CyclePhase{
			Phase:       PhaseLuteal,
			Name:        "Luteal Phase",
			Description: "Progesterone is high. Fasting may be more challenging.",
		}
	}
}

// InLutealFastingWarning reports whether fasting is hardest (days 21-28).
// Note this is narrower than the Luteal phase reported by CyclePhaseFor.
func InLutealFastingWarning(cycleDay int) bool {
	return cycleDay >= lutealFastingWarningStart && cycleDay <= AverageCycleLength
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
