package services

import (
	"reflect"
	"testing"

	"github.com/ketomate/backend/internal/models"
)

func strptr(s string) *string { return &s }

func TestIsProfileCompleteNil(t *testing.T) {
	t.Parallel()
	if IsProfileComplete(nil) {
		t.Fatalf("nil profile must be incomplete")
	}
}

func TestIsProfileComplete(t *testing.T) {
	t.Parallel()
	profile := &models.Profile{
		FullName:    strptr("Ada Example"),
		City:        strptr("Berlin"),
		FastingGoal: 16,
	}
	if !IsProfileComplete(profile) {
		t.Fatalf("expected complete profile")
	}
}

// FastingGoal 0 means "not set", so the profile stays incomplete even
// with everything else filled in.
func TestIsProfileCompleteZeroGoal(t *testing.T) {
	t.Parallel()
	profile := &models.Profile{
		FullName:    strptr("Ada Example"),
		City:        strptr("Berlin"),
		FastingGoal: 0,
	}
	if IsProfileComplete(profile) {
		t.Fatalf("fasting goal 0 must count as missing")
	}
}

func TestIsProfileCompleteEmptyStrings(t *testing.T) {
	t.Parallel()
	profile := &models.Profile{
		FullName:    strptr(""),
		City:        strptr("Berlin"),
		FastingGoal: 14,
	}
	if IsProfileComplete(profile) {
		t.Fatalf("empty full name must count as missing")
	}
}

func TestMissingProfileFields(t *testing.T) {
	t.Parallel()
	got := MissingProfileFields(nil)
	want := []string{"full_name", "city", "fasting_goal"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("nil profile: expected %v, got %v", want, got)
	}

	got = MissingProfileFields(&models.Profile{
		FullName:    strptr("Ada Example"),
		FastingGoal: 16,
	})
	want = []string{"city"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if missing := MissingProfileFields(&models.Profile{
		FullName:    strptr("Ada Example"),
		City:        strptr("Berlin"),
		FastingGoal: 16,
	}); len(missing) != 0 {
		t.Fatalf("complete profile reported missing fields: %v", missing)
	}
}
