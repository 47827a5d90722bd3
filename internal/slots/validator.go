// Package slots validates requested time slots against the operating window
// and generates day grids of hourly availability.
package slots

import (
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

// Operating window: bookings run on hourly ticks from 08:00 to 18:00.
const (
	OpenTick  = models.TimeOfDay(8 * 60)
	CloseTick = models.TimeOfDay(18 * 60)
)

// onTick reports whether t is an hour mark inside the operating window.
func onTick(t models.TimeOfDay) bool {
	return t.OnHour() && t >= OpenTick && t <= CloseTick
}

// Validate checks a candidate slot against a workspace. Rules apply in order
// and short-circuit on the first failure; there are no side effects.
// A participants value of zero means "not supplied" and skips the capacity
// rule.
func Validate(candidate models.TimeSlot, ws *models.Workspace, participants int, now time.Time) error {
	if models.DateOnly(candidate.Date).Before(models.DateOnly(now)) {
		return models.NewValidationError(models.CodePastDate,
			"date %s is in the past", candidate.Date.Format("2006-01-02"))
	}
	if !onTick(candidate.Start) || !onTick(candidate.End) {
		return models.NewValidationError(models.CodeBadTimeFormat,
			"times must fall on hourly marks between %s and %s", OpenTick, CloseTick)
	}
	if candidate.End <= candidate.Start {
		return models.NewValidationError(models.CodeEndBeforeStart,
			"end time %s must be after start time %s", candidate.End, candidate.Start)
	}
	if participants != 0 && (participants < 1 || participants > ws.Capacity) {
		return models.NewValidationError(models.CodeOverCapacity,
			"participant count %d exceeds capacity %d of %s", participants, ws.Capacity, ws.Name)
	}
	return nil
}
