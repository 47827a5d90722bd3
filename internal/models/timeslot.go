package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes from midnight.
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// OnHour reports whether the time falls exactly on an hour mark.
func (t TimeOfDay) OnHour() bool { return int(t)%60 == 0 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeSlot is a (date, start, end) interval under consideration for booking.
// The end boundary is exclusive: 09:00-10:00 and 10:00-11:00 do not overlap.
type TimeSlot struct {
	Date  time.Time `json:"date"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewTimeSlot builds a slot with the date normalized to midnight UTC.
func NewTimeSlot(date time.Time, start, end TimeOfDay) TimeSlot {
	return TimeSlot{Date: DateOnly(date), Start: start, End: end}
}

// SameDay reports whether both slots fall on the same calendar day.
func (s TimeSlot) SameDay(other TimeSlot) bool {
	return DateOnly(s.Date).Equal(DateOnly(other.Date))
}

// Overlaps applies the half-open interval test: two slots conflict iff they
// share a day and max(startA, startB) < min(endA, endB).
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if !s.SameDay(other) {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// Equal reports whether the slots describe the same interval.
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.SameDay(other) && s.Start == other.Start && s.End == other.End
}

// StartAt returns the absolute start time of the slot.
func (s TimeSlot) StartAt() time.Time {
	return DateOnly(s.Date).Add(time.Duration(s.Start) * time.Minute)
}

// EndAt returns the absolute end time of the slot.
func (s TimeSlot) EndAt() time.Time {
	return DateOnly(s.Date).Add(time.Duration(s.End) * time.Minute)
}

// Elapsed reports whether the slot's end time has passed.
func (s TimeSlot) Elapsed(now time.Time) bool {
	return s.EndAt().Before(now)
}

// Hours returns the slot length in whole hours, rounding down.
func (s TimeSlot) Hours() int {
	if s.End <= s.Start {
		return 0
	}
	return int(s.End-s.Start) / 60
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Date.Format("2006-01-02"), s.Start, s.End)
}
