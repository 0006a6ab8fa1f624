package services

import (
	"testing"
	"time"
)

func TestComputeFastingStatsSingleWindow(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	meals := []time.Time{base, base.Add(10 * time.Hour), base.Add(22 * time.Hour)}
	now := time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC)

	stats := ComputeFastingStats(16, meals, day(2026, 4, 1), day(2026, 4, 30), now)

	if len(stats.FastingWindows) != 1 {
		t.Fatalf("expected 1 fasting window, got %d", len(stats.FastingWindows))
	}
	if stats.FastingWindows[0].Hours != 12 {
		t.Fatalf("expected 12h window, got %dh", stats.FastingWindows[0].Hours)
	}
	if stats.AverageFastingWindow == nil || *stats.AverageFastingWindow != 12 {
		t.Fatalf("expected average 12, got %v", stats.AverageFastingWindow)
	}
	if stats.LongestFast == nil || *stats.LongestFast != 12 {
		t.Fatalf("expected longest 12, got %v", stats.LongestFast)
	}
	if stats.FastingWindowsMetGoal != 0 {
		t.Fatalf("a 12h fast should not meet a 16h goal, got %d", stats.FastingWindowsMetGoal)
	}
	if stats.DaysWithFasting != 1 {
		t.Fatalf("expected 1 day with fasting, got %d", stats.DaysWithFasting)
	}
	if stats.TotalDaysInPeriod != 30 {
		t.Fatalf("expected 30 days in April, got %d", stats.TotalDaysInPeriod)
	}
}

func TestComputeFastingStatsFewerThanTwoMeals(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC)
	stats := ComputeFastingStats(16, []time.Time{now}, day(2026, 4, 1), day(2026, 4, 30), now)

	if len(stats.FastingWindows) != 0 {
		t.Fatalf("expected no windows, got %d", len(stats.FastingWindows))
	}
	if stats.AverageFastingWindow != nil || stats.LongestFast != nil {
		t.Fatalf("average and longest should be nil with no windows")
	}
	if stats.TotalDaysInPeriod != 30 {
		t.Fatalf("total days must still be reported, got %d", stats.TotalDaysInPeriod)
	}
}

// Windows are truncated to whole hours, so a gap just under 12h is not a fast.
func TestComputeFastingStatsTruncatesHours(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	meals := []time.Time{base, base.Add(11*time.Hour + 59*time.Minute)}
	now := time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC)

	stats := ComputeFastingStats(12, meals, day(2026, 4, 1), day(2026, 4, 30), now)
	if len(stats.FastingWindows) != 0 {
		t.Fatalf("11h59m gap should truncate to 11h and be dropped, got %d windows", len(stats.FastingWindows))
	}

	meals = []time.Time{base, base.Add(12*time.Hour + 59*time.Minute)}
	stats = ComputeFastingStats(12, meals, day(2026, 4, 1), day(2026, 4, 30), now)
	if len(stats.FastingWindows) != 1 || stats.FastingWindows[0].Hours != 12 {
		t.Fatalf("12h59m gap should count as a 12h window, got %+v", stats.FastingWindows)
	}
	if stats.FastingWindowsMetGoal != 1 {
		t.Fatalf("a 12h window should meet a 12h goal")
	}
}

func TestComputeFastingStatsUnsortedMeals(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 4, 2, 20, 0, 0, 0, time.UTC)
	meals := []time.Time{base.Add(14 * time.Hour), base}
	now := time.Date(2026, 4, 30, 12, 0, 0, 0, time.UTC)

	stats := ComputeFastingStats(0, meals, day(2026, 4, 1), day(2026, 4, 30), now)
	if len(stats.FastingWindows) != 1 || stats.FastingWindows[0].Hours != 14 {
		t.Fatalf("expected one 14h window from unsorted input, got %+v", stats.FastingWindows)
	}
}

// A period still in progress is clipped at today for the day count.
func TestComputeFastingStatsClipsFuturePeriodEnd(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	stats := ComputeFastingStats(16, nil, day(2026, 4, 1), day(2026, 4, 30), now)
	if stats.TotalDaysInPeriod != 10 {
		t.Fatalf("expected 10 elapsed days, got %d", stats.TotalDaysInPeriod)
	}
}
