package booking

import "github.com/Psybah/deskhive/internal/models"

// FindConflicts returns the existing bookings that block a candidate slot on
// a workspace. Only Pending and Confirmed bookings block; the overlap test is
// half-open, so touching endpoints never conflict. An empty result means the
// slot is free.
func FindConflicts(candidate models.TimeSlot, workspaceID string, existing []models.Booking) []models.Booking {
	return conflictsExcluding(candidate, workspaceID, "", existing)
}

// conflictsExcluding is FindConflicts with one booking carved out of the
// conflict set; reschedule and extend must not collide with the booking
// being moved.
func conflictsExcluding(candidate models.TimeSlot, workspaceID, excludeID string, existing []models.Booking) []models.Booking {
	var conflicts []models.Booking
	for i := range existing {
		b := &existing[i]
		if b.ID == excludeID || b.WorkspaceID != workspaceID || !b.Blocks() {
			continue
		}
		if b.Slot().Overlaps(candidate) {
			conflicts = append(conflicts, *b)
		}
	}
	return conflicts
}
