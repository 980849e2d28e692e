package utils

import (
	"testing"
	"time"
)

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed this year", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), 26},
		{"birthday still ahead this year", time.Date(2000, 11, 2, 0, 0, 0, 0, time.UTC), 25},
		{"birthday today", time.Date(2000, 8, 30, 0, 0, 0, 0, time.UTC), 26},
		{"birthday tomorrow", time.Date(2000, 8, 31, 0, 0, 0, 0, time.UTC), 25},
		{"born this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"future date clamps to zero", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"zero value", time.Time{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CalculateAge(tc.dob, now); got != tc.want {
				t.Errorf("CalculateAge(%v) = %d, want %d", tc.dob, got, tc.want)
			}
		})
	}
}
