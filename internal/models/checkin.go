package models

import "time"

// CheckInStatus is the lifecycle state of a presence record.
type CheckInStatus string

const (
	CheckInActive    CheckInStatus = "active"
	CheckInCompleted CheckInStatus = "completed"
)

// CheckInRecord tracks a physical presence window at a hub. A record may
// reference a booking, but drop-in visits are legal and the two lifecycles
// stay decoupled. Records are historical and never deleted.
type CheckInRecord struct {
	ID           string        `json:"id"`
	BookingID    string        `json:"booking_id,omitempty"`
	UserID       string        `json:"user_id"`
	HubID        string        `json:"hub_id"`
	CheckInTime  time.Time     `json:"check_in_time"`
	CheckOutTime *time.Time    `json:"check_out_time,omitempty"`
	Status       CheckInStatus `json:"status"`
}
