package services

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateCycleDayPeriodEndedToday(t *testing.T) {
	t.Parallel()
	got := CalculateCycleDay(day(2026, 3, 10), day(2026, 3, 10))
	if got != 1 {
		t.Fatalf("expected cycle day 1, got %d", got)
	}
}

func TestCalculateCycleDayEndOfCycle(t *testing.T) {
	t.Parallel()
	got := CalculateCycleDay(day(2026, 3, 1), day(2026, 3, 28))
	if got != 28 {
		t.Fatalf("expected cycle day 28, got %d", got)
	}
}

func TestCalculateCycleDayWrapsAfterFullCycle(t *testing.T) {
	t.Parallel()
	got := CalculateCycleDay(day(2026, 3, 1), day(2026, 3, 29))
	if got != 1 {
		t.Fatalf("expected wrap to cycle day 1, got %d", got)
	}
}

func TestCalculateCycleDayIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()
	lastPeriodEnd := time.Date(2026, 3, 10, 23, 45, 0, 0, time.UTC)
	today := time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC)
	got := CalculateCycleDay(lastPeriodEnd, today)
	if got != 2 {
		t.Fatalf("expected cycle day 2 across midnight, got %d", got)
	}
}

func TestCyclePhaseForBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		day   int
		phase string
	}{
		{1, PhaseMenstrual},
		{5, PhaseMenstrual},
		{6, PhaseFollicular},
		{13, PhaseFollicular},
		{14, PhaseOvulation},
		{16, PhaseOvulation},
		{17, PhaseLuteal},
		{28, PhaseLuteal},
	}
	for _, tc := range cases {
		if got := CyclePhaseFor(tc.day).Phase; got != tc.phase {
			t.Fatalf("day %d: expected phase %s, got %s", tc.day, tc.phase, got)
		}
	}
}

// The luteal phase starts at day 17 but the fasting warning only covers
// days 21-28, so days 17-20 are luteal without a warning.
func TestLutealFastingWarningWindow(t *testing.T) {
	t.Parallel()
	if InLutealFastingWarning(20) {
		t.Fatalf("day 20 should not carry a fasting warning")
	}
	if CyclePhaseFor(20).Phase != PhaseLuteal {
		t.Fatalf("day 20 should still be luteal")
	}
	if !InLutealFastingWarning(21) {
		t.Fatalf("day 21 should carry a fasting warning")
	}
	if !InLutealFastingWarning(28) {
		t.Fatalf("day 28 should carry a fasting warning")
	}
	if InLutealFastingWarning(5) {
		t.Fatalf("menstrual days should not carry a fasting warning")
	}
}
