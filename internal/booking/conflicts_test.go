package booking

import (
	"testing"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

func TestFindConflicts(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	existing := []models.Booking{
		{ID: "b1", WorkspaceID: "ws-001", Date: day, Start: 9 * 60, End: 10 * 60, Status: models.StatusConfirmed},
		{ID: "b2", WorkspaceID: "ws-001", Date: day, Start: 14 * 60, End: 16 * 60, Status: models.StatusPending},
		{ID: "b3", WorkspaceID: "ws-001", Date: day, Start: 10 * 60, End: 12 * 60, Status: models.StatusCancelled},
		{ID: "b4", WorkspaceID: "ws-002", Date: day, Start: 9 * 60, End: 10 * 60, Status: models.StatusConfirmed},
	}

	slot := func(start, end models.TimeOfDay) models.TimeSlot {
		return models.NewTimeSlot(day, start, end)
	}

	tests := []struct {
		name      string
		candidate models.TimeSlot
		wantIDs   []string
	}{
		{"overlaps confirmed", slot(9*60+30, 10*60+30), []string{"b1"}},
		{"overlaps pending", slot(15*60, 17*60), []string{"b2"}},
		{"adjacent before", slot(8*60, 9*60), nil},
		{"adjacent after", slot(10*60, 11*60), nil},
		{"cancelled never blocks", slot(10*60, 12*60), nil},
		{"spans both blockers", slot(9*60, 16*60), []string{"b1", "b2"}},
		{"free window", slot(12*60, 14*60), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := FindConflicts(tt.candidate, "ws-001", existing)
			if len(conflicts) != len(tt.wantIDs) {
				t.Fatalf("got %d conflicts, want %d", len(conflicts), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if conflicts[i].ID != want {
					t.Errorf("conflict[%d] = %s, want %s", i, conflicts[i].ID, want)
				}
			}
		})
	}
}

func TestFindConflictsOtherWorkspace(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := []models.Booking{
		{ID: "b1", WorkspaceID: "ws-002", Date: day, Start: 9 * 60, End: 10 * 60, Status: models.StatusConfirmed},
	}

	candidate := models.NewTimeSlot(day, 9*60, 10*60)
	if got := FindConflicts(candidate, "ws-001", existing); len(got) != 0 {
		t.Errorf("bookings on another workspace should not conflict, got %d", len(got))
	}
}

func TestConflictsExcluding(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := []models.Booking{
		{ID: "b1", WorkspaceID: "ws-001", Date: day, Start: 9 * 60, End: 11 * 60, Status: models.StatusConfirmed},
		{ID: "b2", WorkspaceID: "ws-001", Date: day, Start: 11 * 60, End: 12 * 60, Status: models.StatusConfirmed},
	}

	// A booking being moved must not collide with itself.
	candidate := models.NewTimeSlot(day, 10*60, 12*60)
	conflicts := conflictsExcluding(candidate, "ws-001", "b1", existing)
	if len(conflicts) != 1 || conflicts[0].ID != "b2" {
		t.Errorf("expected only b2 to conflict, got %v", conflicts)
	}
}
