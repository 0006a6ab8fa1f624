package dto

// FastingWindowDTO is one ≥12h gap between two adjacent meal logs.
type FastingWindowDTO struct {
	Date  string `json:"date"`
	Hours int    `json:"hours"`
}

type FastingStatsResponse struct {
	DaysWithFasting       int                `json:"days_with_fasting"`
	TotalDaysInPeriod     int                `json:"total_days_in_period"`
	AverageFastingWindow  *float64           `json:"average_fasting_window"`
	LongestFast           *int               `json:"longest_fast"`
	FastingWindowsMetGoal int                `json:"fasting_windows_met_goal"`
	FastingWindows        []FastingWindowDTO `json:"fasting_windows"`
}

type KetoneReadingDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type KetoneStatsResponse struct {
	Readings []KetoneReadingDTO `json:"readings"`
	Average  *float64           `json:"average"`
	Trend    string             `json:"trend"` // up, down, stable, or empty with <2 readings
	Status   string             `json:"status"`
}

type MonthlyReportResponse struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	FastingGoal  int                   `json:"fasting_goal"`
	Fasting      FastingStatsResponse  `json:"fasting"`
	Ketones      KetoneStatsResponse   `json:"ketones"`
	Cycle        *CycleStatusResponse  `json:"cycle,omitempty"`
	MealCount    int64                 `json:"meal_count"`
	JournalCount int64                 `json:"journal_count"`
}

type FastingSessionResponse struct {
	Active         bool     `json:"active"`
	StartedAt      string   `json:"started_at,omitempty"`
	HoursFasted    *float64 `json:"hours_fasted,omitempty"`
	HoursRemaining *float64 `json:"hours_remaining,omitempty"`
	GoalHours      int      `json:"goal_hours,omitempty"`
}
