package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/datatypes"
)

func intptr(v int) *int           { return &v }
func floatptr(v float64) *float64 { return &v }

func TestBuildMetricsKetoneRequiresValue(t *testing.T) {
	t.Parallel()
	_, err := buildMetrics(models.LogTypeKetoneReading, &dto.CreateJournalEntryRequest{
		Type: models.LogTypeKetoneReading, Content: "morning reading",
	})
	if !errors.Is(err, ErrInvalidMetrics) {
		t.Fatalf("expected ErrInvalidMetrics, got %v", err)
	}
}

func TestBuildMetricsKetoneBounds(t *testing.T) {
	t.Parallel()
	req := &dto.CreateJournalEntryRequest{KetoneReading: floatptr(1.8)}
	metrics, err := buildMetrics(models.LogTypeKetoneReading, req)
	if err != nil {
		t.Fatalf("valid reading rejected: %v", err)
	}
	if metrics == nil {
		t.Fatalf("expected metrics payload")
	}

	req.KetoneReading = floatptr(11.0)
	if _, err := buildMetrics(models.LogTypeKetoneReading, req); !errors.Is(err, ErrInvalidMetrics) {
		t.Fatalf("reading above 10 mmol/L must be rejected, got %v", err)
	}

	req.KetoneReading = floatptr(-0.1)
	if _, err := buildMetrics(models.LogTypeKetoneReading, req); !errors.Is(err, ErrInvalidMetrics) {
		t.Fatalf("negative reading must be rejected, got %v", err)
	}
}

func TestBuildMetricsNoteScales(t *testing.T) {
	t.Parallel()
	req := &dto.CreateJournalEntryRequest{EnergyLevel: intptr(4), Mood: intptr(2)}
	metrics, err := buildMetrics(models.LogTypeMealNote, req)
	if err != nil {
		t.Fatalf("valid scales rejected: %v", err)
	}
	if metrics == nil {
		t.Fatalf("expected metrics payload")
	}

	req.Mood = intptr(6)
	if _, err := buildMetrics(models.LogTypePersonalNote, req); !errors.Is(err, ErrInvalidMetrics) {
		t.Fatalf("mood 6 must be rejected, got %v", err)
	}
}

func TestBuildMetricsKetoneOnNoteRejected(t *testing.T) {
	t.Parallel()
	req := &dto.CreateJournalEntryRequest{KetoneReading: floatptr(1.0)}
	if _, err := buildMetrics(models.LogTypeMealNote, req); !errors.Is(err, ErrInvalidMetrics) {
		t.Fatalf("ketone value on a meal note must be rejected, got %v", err)
	}
}

func TestBuildMetricsNoteWithoutMetricsIsNil(t *testing.T) {
	t.Parallel()
	metrics, err := buildMetrics(models.LogTypePersonalNote, &dto.CreateJournalEntryRequest{})
	if err != nil {
		t.Fatalf("bare note rejected: %v", err)
	}
	if metrics != nil {
		t.Fatalf("bare note should store no metrics, got %s", string(metrics))
	}
}

func TestKetoneValue(t *testing.T) {
	t.Parallel()
	entry := &models.Log{
		ID:      uuid.New(),
		Type:    models.LogTypeKetoneReading,
		Metrics: datatypes.JSON(`{"ketone_reading": 2.3}`),
	}
	value, ok := KetoneValue(entry)
	if !ok || value != 2.3 {
		t.Fatalf("expected 2.3, got %v (ok=%v)", value, ok)
	}

	if _, ok := KetoneValue(&models.Log{Type: models.LogTypeMealNote}); ok {
		t.Fatalf("meal note must not yield a ketone value")
	}
	if _, ok := KetoneValue(&models.Log{Type: models.LogTypeKetoneReading}); ok {
		t.Fatalf("missing metrics must not yield a value")
	}
}

func TestNormalizeLogPageLen(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want int
	}{
		{0, 50},
		{-5, 50},
		{10, 10},
		{200, 200},
		{5000, 50},
	}
	for _, tc := range cases {
		if got := NormalizeLogPageLen(tc.in); got != tc.want {
			t.Fatalf("NormalizeLogPageLen(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
