package booking

import (
	"testing"

	"github.com/Psybah/deskhive/internal/models"
)

func TestFSMTransitions(t *testing.T) {
	fsm := NewFSM()

	tests := []struct {
		name        string
		from        models.BookingStatus
		to          models.BookingStatus
		shouldAllow bool
	}{
		{"pending to confirmed", models.StatusPending, models.StatusConfirmed, true},
		{"pending to cancelled", models.StatusPending, models.StatusCancelled, true},
		{"confirmed to cancelled", models.StatusConfirmed, models.StatusCancelled, true},
		{"confirmed to completed", models.StatusConfirmed, models.StatusCompleted, true},
		// Terminal states
		{"cancelled to confirmed", models.StatusCancelled, models.StatusConfirmed, false},
		{"cancelled to completed", models.StatusCancelled, models.StatusCompleted, false},
		{"completed to confirmed", models.StatusCompleted, models.StatusConfirmed, false},
		{"completed to cancelled", models.StatusCompleted, models.StatusCancelled, false},
		// Skipping states
		{"pending to completed", models.StatusPending, models.StatusCompleted, false},
		{"confirmed to pending", models.StatusConfirmed, models.StatusPending, false},
		// Unknown status
		{"unknown status", models.BookingStatus("draft"), models.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := fsm.CanTransition(tt.from, tt.to)
			if allowed != tt.shouldAllow {
				t.Errorf("transition %s -> %s: expected allowed=%v, got %v",
					tt.from, tt.to, tt.shouldAllow, allowed)
			}
		})
	}
}

func TestFSMMutable(t *testing.T) {
	fsm := NewFSM()

	tests := []struct {
		status models.BookingStatus
		want   bool
	}{
		{models.StatusPending, true},
		{models.StatusConfirmed, true},
		{models.StatusCancelled, false},
		{models.StatusCompleted, false},
	}

	for _, tt := range tests {
		if got := fsm.Mutable(tt.status); got != tt.want {
			t.Errorf("Mutable(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
