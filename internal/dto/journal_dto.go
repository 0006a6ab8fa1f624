package dto

import "github.com/ketomate/backend/internal/models"

// CreateJournalEntryRequest carries the fields for all three entry kinds;
// the service rejects fields that don't belong to the requested type.
type CreateJournalEntryRequest struct {
	Type          string   `json:"type"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"image_url,omitempty"`
	EnergyLevel   *int     `json:"energy_level,omitempty"`
	Mood          *int     `json:"mood,omitempty"`
	KetoneReading *float64 `json:"ketone_reading,omitempty"`
}

type JournalListResponse struct {
	Entries []models.Log `json:"entries"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}
