package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrLogNotFound    = errors.New("log entry not found")
	ErrInvalidLogType = errors.New("invalid log type")
	ErrInvalidMetrics = errors.New("invalid metrics for log type")
)

// Metric bounds. Energy and mood are 1-5 scales; ketone readings are
// mmol/L and anything above 10 is treated as a sensor error.
const (
	scaleMin          = 1
	scaleMax          = 5
	maxKetoneReading  = 10.0
	defaultLogPageLen = 50
	maxLogPageLen     = 200
)

// NormalizeLogPageLen clamps a requested page length to the one actually
// served, so callers can echo it back truthfully.
func NormalizeLogPageLen(limit int) int {
	if limit <= 0 || limit > maxLogPageLen {
		return defaultLogPageLen
	}
	return limit
}

type JournalService struct {
	db *gorm.DB
}

func NewJournalService(db *gorm.DB) *JournalService {
	return &JournalService{db: db}
}

// Create validates and stores a journal entry. The metrics payload is a
// tagged union keyed by the entry type: notes carry optional 1-5 energy
// and mood scales, ketone readings carry a required mmol/L value.
func (s *JournalService) Create(userID uuid.UUID, req *dto.CreateJournalEntryRequest) (*models.Log, error) {
	logType := strings.TrimSpace(req.Type)
	if !isValidLogType(logType) {
		return nil, ErrInvalidLogType
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, errors.New("content is required")
	}

	metrics, err := buildMetrics(logType, req)
	if err != nil {
		return nil, err
	}

	var imageURL *string
	if req.ImageURL != "" {
		imageURL = &req.ImageURL
	}

	entry := models.Log{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     logType,
		Content:  strings.TrimSpace(req.Content),
		ImageURL: imageURL,
		Metrics:  metrics,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create log entry: %w", err)
	}
	return &entry, nil
}

// List returns the user's entries newest first, optionally filtered by
// type, with limit/offset paging.
func (s *JournalService) List(userID uuid.UUID, logType string, limit, offset int) ([]models.Log, int64, error) {
	if logType != "" && !isValidLogType(logType) {
		return nil, 0, ErrInvalidLogType
	}
	limit = NormalizeLogPageLen(limit)

	query := s.db.Model(&models.Log{}).Scopes(identity.ForUser(userID))
	if logType != "" {
		query = query.Where("type = ?", logType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count log entries: %w", err)
	}

	var entries []models.Log
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list log entries: %w", err)
	}
	return entries, total, nil
}

// ListRange returns entries of one type in [from, to) ascending, for the
// report aggregations.
func (s *JournalService) ListRange(userID uuid.UUID, logType string, from, to time.Time) ([]models.Log, error) {
	var entries []models.Log
	err := s.db.Scopes(identity.ForUser(userID)).
		Where("type = ? AND created_at >= ? AND created_at < ?", logType, from, to).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	return entries, nil
}

func (s *JournalService) Get(userID, entryID uuid.UUID) (*models.Log, error) {
	var entry models.Log
	err := s.db.Scopes(identity.ForUser(userID)).First(&entry, "id = ?", entryID).Error
	if err != nil {
		return nil, ErrLogNotFound
	}
	return &entry, nil
}

// Delete removes one of the user's own entries. Entries are otherwise
// immutable; there is no update path.
func (s *JournalService) Delete(userID, entryID uuid.UUID) error {
	result := s.db.Scopes(identity.ForUser(userID)).Delete(&models.Log{}, "id = ?", entryID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete log entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}

func isValidLogType(logType string) bool {
	for _, t := range models.LogTypes {
		if t == logType {
			return true
		}
	}
	return false
}

func buildMetrics(logType string, req *dto.CreateJournalEntryRequest) (datatypes.JSON, error) {
	switch logType {
	case models.LogTypeKetoneReading:
		if req.KetoneReading == nil {
			return nil, fmt.Errorf("%w: ketone_reading value is required", ErrInvalidMetrics)
		}
		v := *req.KetoneReading
		if v < 0 || v > maxKetoneReading {
			return nil, fmt.Errorf("%w: ketone_reading must be between 0 and %.0f", ErrInvalidMetrics, maxKetoneReading)
		}
		return marshalMetrics(map[string]interface{}{"ketone_reading": v})
	case models.LogTypeMealNote, models.LogTypePersonalNote:
		if req.KetoneReading != nil {
			return nil, fmt.Errorf("%w: ketone_reading only belongs on ketone entries", ErrInvalidMetrics)
		}
		metrics := map[string]interface{}{}
		if req.EnergyLevel != nil {
			if *req.EnergyLevel < scaleMin || *req.EnergyLevel > scaleMax {
				return nil, fmt.Errorf("%w: energy_level must be between %d and %d", ErrInvalidMetrics, scaleMin, scaleMax)
			}
			metrics["energy_level"] = *req.EnergyLevel
		}
		if req.Mood != nil {
			if *req.Mood < scaleMin || *req.Mood > scaleMax {
				return nil, fmt.Errorf("%w: mood must be between %d and %d", ErrInvalidMetrics, scaleMin, scaleMax)
			}
			metrics["mood"] = *req.Mood
		}
		if len(metrics) == 0 {
			return nil, nil
		}
		return marshalMetrics(metrics)
	default:
		return nil, ErrInvalidLogType
	}
}

func marshalMetrics(metrics map[string]interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// KetoneValue extracts the reading from a ketone entry's metrics blob.
func KetoneValue(entry *models.Log) (float64, bool) {
	if entry.Type != models.LogTypeKetoneReading || len(entry.Metrics) == 0 {
		return 0, false
	}
	var metrics struct {
		KetoneReading *float64 `json:"ketone_reading"`
	}
	if err := json.Unmarshal(entry.Metrics, &metrics); err != nil || metrics.KetoneReading == nil {
		return 0, false
	}
	return *metrics.KetoneReading, true
}
