package services

import "testing"

func TestClassifyKetosis(t *testing.T) {
	t.Parallel()
	cases := []struct {
		value float64
		want  string
	}{
		{0.0, KetoneStatusBelow},
		{0.49, KetoneStatusBelow},
		{0.5, KetoneStatusLight},
		{1.49, KetoneStatusLight},
		{1.5, KetoneStatusOptimal},
		{3.2, KetoneStatusOptimal},
	}
	for _, tc := range cases {
		if got := ClassifyKetosis(tc.value); got != tc.want {
			t.Fatalf("%.2f: expected %s, got %s", tc.value, tc.want, got)
		}
	}
}

func TestKetoneTrendNeedsTwoReadings(t *testing.T) {
	t.Parallel()
	if got := KetoneTrend(nil); got != "" {
		t.Fatalf("expected empty trend for no readings, got %q", got)
	}
	if got := KetoneTrend([]float64{1.2}); got != "" {
		t.Fatalf("expected empty trend for one reading, got %q", got)
	}
}

func TestKetoneTrendDirections(t *testing.T) {
	t.Parallel()
	if got := KetoneTrend([]float64{0.5, 0.6, 1.2, 1.4}); got != KetoneTrendUp {
		t.Fatalf("expected up, got %s", got)
	}
	if got := KetoneTrend([]float64{1.8, 1.6, 0.7, 0.6}); got != KetoneTrendDown {
		t.Fatalf("expected down, got %s", got)
	}
	// Second-half average within ±0.2 of the first half stays stable.
	if got := KetoneTrend([]float64{1.0, 1.1, 1.2, 1.0}); got != KetoneTrendStable {
		t.Fatalf("expected stable, got %s", got)
	}
}
