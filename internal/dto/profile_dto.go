package dto

type ProfileUpdateRequest struct {
	FullName      string  `json:"full_name"`
	DOB           string  `json:"dob"`
	Gender        string  `json:"gender"`
	LastPeriodEnd string  `json:"last_period_end"`
	LocationType  string  `json:"location_type"`
	ActivityLevel string  `json:"activity_level"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	FastingGoal   int     `json:"fasting_goal"`
	UserName      *string `json:"user_name"`
}

type ProfileStatusResponse struct {
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missing_fields"`
}

type CycleStatusResponse struct {
	HasData        bool   `json:"has_data"`
	CycleDay       int    `json:"cycle_day,omitempty"`
	Phase          string `json:"phase,omitempty"`
	PhaseName      string `json:"phase_name,omitempty"`
	Description    string `json:"description,omitempty"`
	FastingWarning bool   `json:"fasting_warning,omitempty"`
}
