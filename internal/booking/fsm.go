package booking

import "github.com/Psybah/deskhive/internal/models"

// FSM defines the legal booking status transitions. Cancelled and Completed
// are terminal.
type FSM struct {
	transitions map[models.BookingStatus][]models.BookingStatus
}

// NewFSM creates the booking status machine.
func NewFSM() *FSM {
	return &FSM{
		transitions: map[models.BookingStatus][]models.BookingStatus{
			models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
			models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted},
			models.StatusCancelled: {},
			models.StatusCompleted: {},
		},
	}
}

// CanTransition checks if a status change is allowed.
func (f *FSM) CanTransition(from, to models.BookingStatus) bool {
	allowed, ok := f.transitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Mutable reports whether a booking in this status may still be rescheduled
// or extended.
func (f *FSM) Mutable(status models.BookingStatus) bool {
	return status == models.StatusPending || status == models.StatusConfirmed
}
