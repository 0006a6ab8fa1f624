package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrFastAlreadyActive = errors.New("a fast is already in progress")
	ErrNoActiveFast      = errors.New("no fast in progress")
)

type FastingSessionService struct {
	db       *gorm.DB
	profiles *ProfileService
}

func NewFastingSessionService(db *gorm.DB, profiles *ProfileService) *FastingSessionService {
	return &FastingSessionService{db: db, profiles: profiles}
}

// Start opens a fast. The goal defaults to the profile's fasting goal
// when the request doesn't carry one.
func (s *FastingSessionService) Start(userID uuid.UUID, goalHours int, now time.Time) (*models.FastingSession, error) {
	if err := guardNoActiveFast(s.active(userID)); err != nil {
		return nil, err
	}

	if goalHours <= 0 {
		profile, err := s.profiles.Get(userID)
		if err == nil {
			goalHours = profile.FastingGoal
		}
	}

	session := models.FastingSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: now.UTC(),
		GoalHours: goalHours,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to start fast: %w", err)
	}
	return &session, nil
}

// End closes the active fast.
func (s *FastingSessionService) End(userID uuid.UUID, now time.Time) (*models.FastingSession, error) {
	session, err := s.active(userID)
	if err != nil {
		return nil, err
	}

	endedAt := now.UTC()
	if err := s.db.Model(session).Update("ended_at", endedAt).Error; err != nil {
		return nil, fmt.Errorf("failed to end fast: %w", err)
	}
	session.EndedAt = &endedAt
	return session, nil
}

// Status reports the current fast's elapsed and remaining hours.
func (s *FastingSessionService) Status(userID uuid.UUID, now time.Time) (*dto.FastingSessionResponse, error) {
	session, err := s.active(userID)
	if errors.Is(err, ErrNoActiveFast) {
		return &dto.FastingSessionResponse{Active: false}, nil
	}
	if err != nil {
		return nil, err
	}

	hoursFasted := now.Sub(session.StartedAt).Hours()
	resp := &dto.FastingSessionResponse{
		Active:      true,
		StartedAt:   session.StartedAt.Format(time.RFC3339),
		HoursFasted: &hoursFasted,
		GoalHours:   session.GoalHours,
	}
	if session.GoalHours > 0 {
		remaining := float64(session.GoalHours) - hoursFasted
		if remaining < 0 {
			remaining = 0
		}
		resp.HoursRemaining = &remaining
	}
	return resp, nil
}

// guardNoActiveFast checks Start's precondition against the active-session
// lookup. A lookup failure propagates; it must not read as "no fast".
func guardNoActiveFast(active *models.FastingSession, err error) error {
	if err != nil && !errors.Is(err, ErrNoActiveFast) {
		return err
	}
	if active != nil {
		return ErrFastAlreadyActive
	}
	return nil
}

func (s *FastingSessionService) active(userID uuid.UUID) (*models.FastingSession, error) {
	var session models.FastingSession
	err := s.db.Scopes(identity.ForUser(userID)).
		Where("ended_at IS NULL").
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveFast
		}
		return nil, fmt.Errorf("failed to load fasting session: %w", err)
	}
	return &session, nil
}
