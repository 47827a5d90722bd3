package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking reserves a workspace for a time slot. Mutations go through the
// lifecycle manager only; Cancelled and Completed are terminal.
type Booking struct {
	ID           string        `json:"id"`
	WorkspaceID  string        `json:"workspace_id"`
	UserID       string        `json:"user_id"`
	Date         time.Time     `json:"date"`
	Start        TimeOfDay     `json:"start"`
	End          TimeOfDay     `json:"end"`
	Participants int           `json:"participants"`
	Notes        string        `json:"notes,omitempty"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Version      int64         `json:"version"`
}

// Slot returns the booking's reserved interval.
func (b *Booking) Slot() TimeSlot {
	return TimeSlot{Date: DateOnly(b.Date), Start: b.Start, End: b.End}
}

// SetSlot replaces the reserved interval in place.
func (b *Booking) SetSlot(slot TimeSlot) {
	b.Date = DateOnly(slot.Date)
	b.Start = slot.Start
	b.End = slot.End
}

// Blocks reports whether the booking occupies its slot for conflict purposes.
func (b *Booking) Blocks() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Elapsed reports whether the booking's end time has passed.
func (b *Booking) Elapsed(now time.Time) bool {
	return b.Slot().Elapsed(now)
}
