package slots

import (
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

// DaySlot is one hour of a workspace's day grid.
type DaySlot struct {
	Start     models.TimeOfDay `json:"start"`
	End       models.TimeOfDay `json:"end"`
	Available bool             `json:"available"`
}

// Grid builds the hourly availability grid for one workspace and date from a
// snapshot of its bookings. A slot is unavailable when a blocking booking
// overlaps it or when it has already started.
func Grid(date time.Time, bookings []models.Booking, now time.Time) []DaySlot {
	day := models.DateOnly(date)
	grid := make([]DaySlot, 0, (CloseTick-OpenTick)/60)
	for cursor := OpenTick; cursor < CloseTick; cursor += 60 {
		slot := models.TimeSlot{Date: day, Start: cursor, End: cursor + 60}
		booked := false
		for i := range bookings {
			if bookings[i].Blocks() && bookings[i].Slot().Overlaps(slot) {
				booked = true
				break
			}
		}
		past := slot.StartAt().Before(now)
		grid = append(grid, DaySlot{Start: slot.Start, End: slot.End, Available: !booked && !past})
	}
	return grid
}

// HasFreeHour reports whether any hour of the day remains available.
func HasFreeHour(date time.Time, bookings []models.Booking, now time.Time) bool {
	for _, s := range Grid(date, bookings, now) {
		if s.Available {
			return true
		}
	}
	return false
}
