package reward_test

import (
	"testing"

	"spinstudio/internal/domain/reward"
)

var ladder = []reward.Reward{
	{ID: 3, Title: "Leyenda del Ciclismo", RequiredClasses: 50},
	{ID: 1, Title: "Club de los 10", RequiredClasses: 10},
	{ID: 2, Title: "Guerrero del Pedal", RequiredClasses: 25},
}

// TestNext covers next-reward selection regardless of slice order.
func TestNext(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		wantID    int64
		wantOK    bool
	}{
		{"fresh rider", 0, 1, true},
		{"exactly at first threshold", 10, 2, true},
		{"intermediate", 23, 2, true},
		{"advanced", 49, 3, true},
		{"everything unlocked", 52, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reward.Next(ladder, tt.completed)
			if ok != tt.wantOK || got.ID != tt.wantID {
				t.Errorf("Next(%d) = (%d, %v), want (%d, %v)", tt.completed, got.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

// TestNext_Empty verifies no reward is returned from an empty ladder.
func TestNext_Empty(t *testing.T) {
	if _, ok := reward.Next(nil, 5); ok {
		t.Error("expected no next reward")
	}
}

// TestUnlockedAndProgress covers the unlock boundary and percentage.
func TestUnlockedAndProgress(t *testing.T) {
	r := reward.Reward{ID: 2, Title: "Guerrero del Pedal", RequiredClasses: 25}
	if r.Unlocked(24) {
		t.Error("24 classes should not unlock a 25-class reward")
	}
	if !r.Unlocked(25) {
		t.Error("25 classes should unlock a 25-class reward")
	}
	if got := reward.Progress(r, 23); got != 92 {
		t.Errorf("Progress(23) = %d, want 92", got)
	}
	if got := reward.Progress(r, 30); got != 100 {
		t.Errorf("Progress(30) = %d, want 100", got)
	}
}
