package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// Required fields for leaving onboarding.
var requiredProfileFields = []string{"full_name", "city", "fasting_goal"}

// IsProfileComplete reports whether a profile satisfies the onboarding
// requirements: full name, city and fasting goal all present. A
// FastingGoal of 0 counts as missing.
func IsProfileComplete(p *models.Profile) bool {
	if p == nil {
		return false
	}
	return p.FullName != nil && *p.FullName != "" &&
		p.City != nil && *p.City != "" &&
		p.FastingGoal != 0
}

// MissingProfileFields returns the required fields still unset, for
// user-facing messaging.
func MissingProfileFields(p *models.Profile) []string {
	if p == nil {
		return append([]string{}, requiredProfileFields...)
	}

	var missing []string
	if p.FullName == nil || *p.FullName == "" {
		missing = append(missing, "full_name")
	}
	if p.City == nil || *p.City == "" {
		missing = append(missing, "city")
	}
	if p.FastingGoal == 0 {
		missing = append(missing, "fasting_goal")
	}
	return missing
}

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureExists inserts a minimal profile row for the user if none exists
// yet. Used by sign-up and the auth callback.
func (s *ProfileService) EnsureExists(userID uuid.UUID, email string) error {
	var existing models.Profile
	err := s.db.Select("id").First(&existing, "id = ?", userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	profile := models.Profile{
		ID:        userID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// Update applies onboarding or profile-edit data. Empty optional fields
// clear the stored value.
func (s *ProfileService) Update(userID uuid.UUID, req dto.ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = optionalString(req.FullName)
	profile.Gender = optionalString(req.Gender)
	profile.LocationType = optionalString(req.LocationType)
	profile.ActivityLevel = optionalString(req.ActivityLevel)
	profile.Address = optionalString(req.Address)
	profile.City = optionalString(req.City)
	profile.FastingGoal = req.FastingGoal
	if req.UserName != nil {
		profile.UserName = req.UserName
	}

	profile.DOB, err = optionalDate(req.DOB)
	if err != nil {
		return nil, fmt.Errorf("invalid dob: %w", err)
	}
	profile.LastPeriodEnd, err = optionalDate(req.LastPeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid last_period_end: %w", err)
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) Status(userID uuid.UUID) (*dto.ProfileStatusResponse, error) {
	profile, err := s.Get(userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	// A missing row reads as an entirely incomplete profile.
	return &dto.ProfileStatusResponse{
		Complete:      IsProfileComplete(profile),
		MissingFields: MissingProfileFields(profile),
	}, nil
}

// CycleStatus derives the current cycle day and phase. A profile without a
// recorded last period end short-circuits to an empty result.
func (s *ProfileService) CycleStatus(userID uuid.UUID, now time.Time) (*dto.CycleStatusResponse, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if profile.LastPeriodEnd == nil {
		return &dto.CycleStatusResponse{HasData: false}, nil
	}

	day := CalculateCycleDay(*profile.LastPeriodEnd, now)
	phase := CyclePhaseFor(day)
	return &dto.CycleStatusResponse{
		HasData:        true,
		CycleDay:       day,
		Phase:          phase.Phase,
		PhaseName:      phase.Name,
		Description:    phase.Description,
		FastingWarning: InLutealFastingWarning(day),
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
