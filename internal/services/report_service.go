package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/gorm"
)

// Ketosis classification thresholds in mmol/L.
const (
	ketosisOptimalMin = 1.5
	ketosisLightMin   = 0.5
	trendBand         = 0.2
)

const (
	KetoneStatusOptimal = "optimal"
	KetoneStatusLight   = "light"
	KetoneStatusBelow   = "below"

	KetoneTrendUp     = "up"
	KetoneTrendDown   = "down"
	KetoneTrendStable = "stable"
)

type ReportService struct {
	db       *gorm.DB
	journal  *JournalService
	profiles *ProfileService
}

func NewReportService(db *gorm.DB, journal *JournalService, profiles *ProfileService) *ReportService {
	return &ReportService{db: db, journal: journal, profiles: profiles}
}

// Monthly assembles the report for one calendar month: fasting stats
// derived from meal timestamps, the ketone series with trend and
// classification, cycle status when period data exists, and raw counts.
func (s *ReportService) Monthly(userID uuid.UUID, year, month int, now time.Time) (*dto.MonthlyReportResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	lastDay := monthEnd.AddDate(0, 0, -1)

	profile, err := s.profiles.Get(userID)
	if err != nil {
		return nil, err
	}

	meals, err := s.journal.ListRange(userID, models.LogTypeMealNote, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	mealTimes := make([]time.Time, 0, len(meals))
	for _, meal := range meals {
		mealTimes = append(mealTimes, meal.CreatedAt)
	}

	fasting := ComputeFastingStats(profile.FastingGoal, mealTimes, monthStart, lastDay, now)

	ketones, err := s.ketoneStats(userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	report := &dto.MonthlyReportResponse{
		Year:        year,
		Month:       month,
		FastingGoal: profile.FastingGoal,
		Fasting:     fastingStatsDTO(fasting),
		Ketones:     *ketones,
		MealCount:   int64(len(meals)),
	}

	if err := s.db.Model(&models.Log{}).
		Scopes(identity.ForUser(userID)).
		Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
		Count(&report.JournalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count journal entries: %w", err)
	}

	if profile.LastPeriodEnd != nil {
		cycle, err := s.profiles.CycleStatus(userID, now)
		if err != nil {
			return nil, err
		}
		report.Cycle = cycle
	}

	return report, nil
}

func (s *ReportService) ketoneStats(userID uuid.UUID, from, to time.Time) (*dto.KetoneStatsResponse, error) {
	entries, err := s.journal.ListRange(userID, models.LogTypeKetoneReading, from, to)
	if err != nil {
		return nil, err
	}

	readings := make([]dto.KetoneReadingDTO, 0, len(entries))
	values := make([]float64, 0, len(entries))
	for i := range entries {
		value, ok := KetoneValue(&entries[i])
		if !ok {
			continue
		}
		readings = append(readings, dto.KetoneReadingDTO{
			Date:  entries[i].CreatedAt.Format("Jan 2"),
			Value: value,
		})
		values = append(values, value)
	}

	stats := &dto.KetoneStatsResponse{Readings: readings}
	if len(values) == 0 {
		return stats, nil
	}

	avg := mean(values)
	stats.Average = &avg
	stats.Status = ClassifyKetosis(values[len(values)-1])
	stats.Trend = KetoneTrend(values)
	return stats, nil
}

// ClassifyKetosis buckets a reading: nutritional ketosis starts at 0.5
// mmol/L and the optimal fat-burning range at 1.5.
func ClassifyKetosis(value float64) string {
	switch {
	case value >= ketosisOptimalMin:
		return KetoneStatusOptimal
	case value >= ketosisLightMin:
		return KetoneStatusLight
	default:
		return KetoneStatusBelow
	}
}

// KetoneTrend compares the second-half average of the series against the
// first half. Moves within ±0.2 mmol/L count as stable. Fewer than two
// readings give no trend.
func KetoneTrend(values []float64) string {
	if len(values) < 2 {
		return ""
	}

	mid := len(values) / 2
	firstHalf := mean(values[:mid])
	secondHalf := mean(values[mid:])

	diff := secondHalf - firstHalf
	switch {
	case diff > trendBand:
		return KetoneTrendUp
	case diff < -trendBand:
		return KetoneTrendDown
	default:
		return KetoneTrendStable
	}
}

func fastingStatsDTO(stats FastingStats) dto.FastingStatsResponse {
	windows := make([]dto.FastingWindowDTO, 0, len(stats.FastingWindows))
	for _, w := range stats.FastingWindows {
		windows = append(windows, dto.FastingWindowDTO{Date: w.Date, Hours: w.Hours})
	}
	return dto.FastingStatsResponse{
		DaysWithFasting:       stats.DaysWithFasting,
		TotalDaysInPeriod:     stats.TotalDaysInPeriod,
		AverageFastingWindow:  stats.AverageFastingWindow,
		LongestFast:           stats.LongestFast,
		FastingWindowsMetGoal: stats.FastingWindowsMetGoal,
		FastingWindows:        windows,
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
