package services

import (
	"sort"
	"time"
)

// MinFastingHours is the smallest gap between two meals that counts as a fast.
const MinFastingHours = 12

// FastingWindow is a ≥12h gap between two chronologically adjacent meal
// logs, labelled with the day the fast was broken.
type FastingWindow struct {
	Date  string `json:"date"`
	Hours int    `json:"hours"`
}

type FastingStats struct {
	DaysWithFasting       int
	TotalDaysInPeriod     int
	AverageFastingWindow  *float64
	LongestFast           *int
	FastingWindowsMetGoal int
	FastingWindows        []FastingWindow
}

// ComputeFastingStats derives fasting windows from meal-log timestamps in a
// reporting period. Window lengths are truncated to whole hours; fractional
// hours are dropped, not rounded. With fewer than two meals the result
// degrades to an empty shape rather than an error. A period ending in the
// future is reported against elapsed days, not the full period.
func ComputeFastingStats(goalHours int, mealTimes []time.Time, periodStart, periodEnd, now time.Time) FastingStats {
	totalDays := daysBetween(periodStart, periodEnd) + 1
	if periodEnd.After(now) {
		totalDays = daysBetween(periodStart, now) + 1
	}

	stats := FastingStats{
		TotalDaysInPeriod: totalDays,
		FastingWindows:    []FastingWindow{},
	}

	if len(mealTimes) < 2 {
		return stats
	}

	sorted := make([]time.Time, len(mealTimes))
	copy(sorted, mealTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	for i := 1; i < len(sorted); i++ {
		hours := int(sorted[i].Sub(sorted[i-1]).Hours())
		if hours >= MinFastingHours {
			stats.FastingWindows = append(stats.FastingWindows, FastingWindow{
				Date:  sorted[i].Format("Jan 2"),
				Hours: hours,
			})
		}
	}

	stats.DaysWithFasting = len(stats.FastingWindows)
	if len(stats.FastingWindows) == 0 {
		return stats
	}

	totalHours := 0
	longest := 0
	for _, fw := range stats.FastingWindows {
		totalHours += fw.Hours
		if fw.Hours > longest {
			longest = fw.Hours
		}
		if fw.Hours >= goalHours {
			stats.FastingWindowsMetGoal++
		}
	}

	avg := float64(totalHours) / float64(len(stats.FastingWindows))
	stats.AverageFastingWindow = &avg
	stats.LongestFast = &longest

	return stats
}

func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}
