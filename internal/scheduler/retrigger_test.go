package scheduler

import (
	"testing"
	"time"
)

func TestRetriggerTimes_FarFuture(t *testing.T) {
	now := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)
	base := now.Add(23 * time.Hour)

	got := RetriggerTimes(base, now)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	for i, at := range got {
		want := base.Add(time.Duration(2*(i+1)) * time.Minute)
		if !at.Equal(want) {
			t.Errorf("retrigger %d = %v, want %v", i, at, want)
		}
	}
}

func TestRetriggerTimes_SkipsPastOffsets(t *testing.T) {
	now := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		base time.Time
		want int
	}{
		{"base 5m ago", now.Add(-5 * time.Minute), 8},
		{"base 18m ago", now.Add(-18 * time.Minute), 1},
		{"base 20m ago", now.Add(-20 * time.Minute), 0},
		{"base exactly now", now, 10},
		{"offset equal to now is skipped", now.Add(-4 * time.Minute), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RetriggerTimes(tt.base, now)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			for _, at := range got {
				if !at.After(now) {
					t.Errorf("retrigger %v not after now", at)
				}
			}
		})
	}
}
