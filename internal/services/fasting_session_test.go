package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/models"
)

func TestGuardNoActiveFast(t *testing.T) {
	t.Parallel()

	if err := guardNoActiveFast(nil, ErrNoActiveFast); err != nil {
		t.Fatalf("no active fast should pass the guard, got %v", err)
	}

	active := &models.FastingSession{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		StartedAt: time.Now().Add(-2 * time.Hour),
	}
	if err := guardNoActiveFast(active, nil); !errors.Is(err, ErrFastAlreadyActive) {
		t.Fatalf("expected ErrFastAlreadyActive, got %v", err)
	}
}

func TestGuardNoActiveFastPropagatesLookupFailure(t *testing.T) {
	t.Parallel()

	// A failed lookup must not read as "no fast in progress" — starting
	// anyway would open a second concurrent session.
	lookupErr := errors.New("connection refused")
	err := guardNoActiveFast(nil, lookupErr)
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected the lookup error back, got %v", err)
	}
	if errors.Is(err, ErrFastAlreadyActive) {
		t.Fatalf("lookup failure misread as an active fast")
	}
}
