package analytics

import (
	"testing"
	"time"
)

func TestUntilNextRun(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "Midday",
			now:  time.Date(2025, 3, 10, 12, 0, 0, 0, loc),
			want: 12*time.Hour + 5*time.Minute,
		},
		{
			name: "JustBeforeMidnight",
			now:  time.Date(2025, 3, 10, 23, 59, 0, 0, loc),
			want: 6 * time.Minute,
		},
		{
			name: "JustAfterTheRunWindow",
			now:  time.Date(2025, 3, 10, 0, 6, 0, 0, loc),
			want: 23*time.Hour + 59*time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := untilNextRun(tt.now)
			if got != tt.want {
				t.Errorf("untilNextRun(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDayStartUsesLocalMidnight(t *testing.T) {
	// A zone four hours behind UTC: local midnight is not a UTC day
	// boundary, so the report window must follow the zone, not UTC.
	loc := time.FixedZone("UTC-4", -4*60*60)
	now := time.Date(2025, 3, 10, 1, 30, 0, 0, loc)

	got := dayStart(now)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("dayStart(%v) = %v, want %v", now, got, want)
	}
	if got.Location() != loc {
		t.Errorf("dayStart location = %v, want %v", got.Location(), loc)
	}

	// The schedule and the window agree: next run is 24h05m after the
	// window's day start when now is exactly midnight.
	if d := untilNextRun(want); d != 24*time.Hour+5*time.Minute {
		t.Errorf("untilNextRun(midnight) = %v, want 24h5m", d)
	}
}
