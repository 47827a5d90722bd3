package models

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", TimeOfDay(9 * 60), false},
		{"18:00", TimeOfDay(18 * 60), false},
		{"00:00", TimeOfDay(0), false},
		{"23:59", TimeOfDay(23*60 + 59), false},
		{"9:30", TimeOfDay(9*60 + 30), false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	if s := TimeOfDay(9 * 60).String(); s != "09:00" {
		t.Errorf("String() = %q, want %q", s, "09:00")
	}
	if s := TimeOfDay(13*60 + 5).String(); s != "13:05" {
		t.Errorf("String() = %q, want %q", s, "13:05")
	}
}

func TestTimeSlotOverlaps(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	otherDay := day.AddDate(0, 0, 1)

	slot := func(d time.Time, start, end int) TimeSlot {
		return NewTimeSlot(d, TimeOfDay(start*60), TimeOfDay(end*60))
	}

	tests := []struct {
		name string
		a, b TimeSlot
		want bool
	}{
		{"identical", slot(day, 9, 10), slot(day, 9, 10), true},
		{"contained", slot(day, 9, 12), slot(day, 10, 11), true},
		{"partial overlap", slot(day, 9, 11), slot(day, 10, 12), true},
		{"touching endpoints", slot(day, 9, 10), slot(day, 10, 11), false},
		{"touching endpoints reversed", slot(day, 10, 11), slot(day, 9, 10), false},
		{"disjoint", slot(day, 8, 9), slot(day, 14, 15), false},
		{"same hours different day", slot(day, 9, 10), slot(otherDay, 9, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestTimeSlotElapsed(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s := NewTimeSlot(day, TimeOfDay(9*60), TimeOfDay(11*60))

	if s.Elapsed(day.Add(10 * time.Hour)) {
		t.Error("slot should not be elapsed while in progress")
	}
	if s.Elapsed(day.Add(11 * time.Hour)) {
		t.Error("slot should not be elapsed exactly at its end")
	}
	if !s.Elapsed(day.Add(11*time.Hour + time.Minute)) {
		t.Error("slot should be elapsed after its end")
	}
}

func TestTimeSlotHours(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	if h := NewTimeSlot(day, TimeOfDay(9*60), TimeOfDay(12*60)).Hours(); h != 3 {
		t.Errorf("Hours() = %d, want 3", h)
	}
	if h := NewTimeSlot(day, TimeOfDay(9*60), TimeOfDay(9*60)).Hours(); h != 0 {
		t.Errorf("Hours() = %d, want 0 for empty slot", h)
	}
}

func TestBookingBlocks(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
	}

	for _, tt := range tests {
		b := Booking{Status: tt.status}
		if got := b.Blocks(); got != tt.want {
			t.Errorf("Blocks() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	stamp := time.Date(2026, 9, 1, 14, 35, 12, 999, time.UTC)
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := DateOnly(stamp); !got.Equal(want) {
		t.Errorf("DateOnly() = %v, want %v", got, want)
	}
}
