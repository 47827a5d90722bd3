package slots

import (
	"errors"
	"testing"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

var testWorkspace = models.Workspace{
	ID:       "ws-001",
	Name:     "Innovation Hub",
	Type:     models.TypeMeetingRoom,
	Capacity: 8,
	Enabled:  true,
}

func mustCode(t *testing.T, err error, code string) {
	t.Helper()
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Code != code {
		t.Errorf("code = %s, want %s", ve.Code, code)
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)
	today := models.DateOnly(now)

	slot := func(d time.Time, start, end models.TimeOfDay) models.TimeSlot {
		return models.NewTimeSlot(d, start, end)
	}

	tests := []struct {
		name         string
		candidate    models.TimeSlot
		participants int
		wantCode     string
	}{
		{
			name:         "valid single hour",
			candidate:    slot(today, 9*60, 10*60),
			participants: 4,
		},
		{
			name:         "valid full day",
			candidate:    slot(today, 8*60, 18*60),
			participants: 8,
		},
		{
			name:         "participants not supplied",
			candidate:    slot(today, 9*60, 10*60),
			participants: 0,
		},
		{
			name:         "past date",
			candidate:    slot(today.AddDate(0, 0, -1), 9*60, 10*60),
			participants: 4,
			wantCode:     models.CodePastDate,
		},
		{
			name:         "start off the hour",
			candidate:    slot(today, 9*60+30, 10*60+30),
			participants: 4,
			wantCode:     models.CodeBadTimeFormat,
		},
		{
			name:         "start before opening",
			candidate:    slot(today, 7*60, 9*60),
			participants: 4,
			wantCode:     models.CodeBadTimeFormat,
		},
		{
			name:         "end after closing",
			candidate:    slot(today, 17*60, 19*60),
			participants: 4,
			wantCode:     models.CodeBadTimeFormat,
		},
		{
			name:         "end equals start",
			candidate:    slot(today, 10*60, 10*60),
			participants: 4,
			wantCode:     models.CodeEndBeforeStart,
		},
		{
			name:         "end before start",
			candidate:    slot(today, 11*60, 10*60),
			participants: 4,
			wantCode:     models.CodeEndBeforeStart,
		},
		{
			name:         "over capacity",
			candidate:    slot(today, 9*60, 10*60),
			participants: 9,
			wantCode:     models.CodeOverCapacity,
		},
		{
			name:         "negative participants",
			candidate:    slot(today, 9*60, 10*60),
			participants: -1,
			wantCode:     models.CodeOverCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.candidate, &testWorkspace, tt.participants, now)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			mustCode(t, err, tt.wantCode)
		})
	}
}

func TestValidateRuleOrder(t *testing.T) {
	now := time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC)

	// Multiple rules broken at once; the first in order wins.
	candidate := models.NewTimeSlot(now.AddDate(0, 0, -1), 11*60+15, 10*60)
	err := Validate(candidate, &testWorkspace, 99, now)
	mustCode(t, err, models.CodePastDate)

	candidate = models.NewTimeSlot(now, 11*60+15, 10*60)
	err = Validate(candidate, &testWorkspace, 99, now)
	mustCode(t, err, models.CodeBadTimeFormat)

	candidate = models.NewTimeSlot(now, 11*60, 10*60)
	err = Validate(candidate, &testWorkspace, 99, now)
	mustCode(t, err, models.CodeEndBeforeStart)
}
