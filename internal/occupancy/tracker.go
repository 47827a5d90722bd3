// Package occupancy tracks physical presence at hubs through check-in and
// check-out, independently of the booking lifecycle.
package occupancy

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Psybah/deskhive/internal/events"
	"github.com/Psybah/deskhive/internal/metrics"
	"github.com/Psybah/deskhive/internal/models"
)

// Store persists check-in records. Records are historical and never deleted.
type Store interface {
	Get(ctx context.Context, id string) (*models.CheckInRecord, error)
	Insert(ctx context.Context, r *models.CheckInRecord) error
	Update(ctx context.Context, r *models.CheckInRecord) error
	ActiveForPair(ctx context.Context, userID, hubID string) (*models.CheckInRecord, error)
	ListForUser(ctx context.Context, userID string) ([]models.CheckInRecord, error)
}

// Tracker runs the NotCheckedIn -> Active -> Completed machine per
// (user, hub) pair. Check-in and check-out for the same pair are serialized
// so at most one Active record can exist at any instant.
type Tracker struct {
	store  Store
	bus    *events.Bus
	clock  func() time.Time
	logger *zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewTracker creates an occupancy tracker.
func NewTracker(store Store, bus *events.Bus, logger *zerolog.Logger) *Tracker {
	return &Tracker{
		store:  store,
		bus:    bus,
		clock:  time.Now,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// SetClock overrides the time source, for tests.
func (t *Tracker) SetClock(clock func() time.Time) { t.clock = clock }

func (t *Tracker) pairLock(userID, hubID string) *sync.Mutex {
	key := userID + "\x00" + hubID
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	return l
}

// CheckIn opens a presence window for the user at a hub. A booking reference
// is optional; drop-in visits are legal.
func (t *Tracker) CheckIn(ctx context.Context, userID, hubID, bookingID string) (*models.CheckInRecord, error) {
	lock := t.pairLock(userID, hubID)
	lock.Lock()
	defer lock.Unlock()

	active, err := t.store.ActiveForPair(ctx, userID, hubID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		metrics.IncCheckinOp("check_in", "already_active")
		return nil, models.NewValidationError(models.CodeAlreadyActive,
			"user %s is already checked in at %s", userID, hubID)
	}

	r := &models.CheckInRecord{
		ID:          uuid.NewString(),
		BookingID:   bookingID,
		UserID:      userID,
		HubID:       hubID,
		CheckInTime: t.clock(),
		Status:      models.CheckInActive,
	}
	if err := t.store.Insert(ctx, r); err != nil {
		return nil, err
	}

	metrics.IncCheckinOp("check_in", "ok")
	t.logger.Info().Str("record_id", r.ID).Str("user_id", userID).Str("hub_id", hubID).Msg("checked in")
	t.bus.Publish(events.Event{Type: events.CheckInOpened, Record: r})
	return r, nil
}

// CheckOut closes an Active record at the current time.
func (t *Tracker) CheckOut(ctx context.Context, recordID string) (*models.CheckInRecord, error) {
	return t.CheckOutAt(ctx, recordID, t.clock())
}

// CheckOutAt closes an Active record at a supplied time. Backfilled records
// may carry externally supplied times, so the window is defended here: a
// check-out before the check-in is rejected.
func (t *Tracker) CheckOutAt(ctx context.Context, recordID string, at time.Time) (*models.CheckInRecord, error) {
	r, err := t.store.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	lock := t.pairLock(r.UserID, r.HubID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; a concurrent check-out may have won.
	r, err = t.store.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if r.Status != models.CheckInActive {
		metrics.IncCheckinOp("check_out", "not_active")
		return nil, models.NewValidationError(models.CodeNotActive,
			"record %s is not active", recordID)
	}
	if at.Before(r.CheckInTime) {
		metrics.IncCheckinOp("check_out", "invalid_window")
		return nil, models.NewValidationError(models.CodeInvalidWindow,
			"check-out %s is before check-in %s", at.Format(time.RFC3339), r.CheckInTime.Format(time.RFC3339))
	}

	r.CheckOutTime = &at
	r.Status = models.CheckInCompleted
	if err := t.store.Update(ctx, r); err != nil {
		return nil, err
	}

	metrics.IncCheckinOp("check_out", "ok")
	t.logger.Info().Str("record_id", r.ID).Str("user_id", r.UserID).Str("hub_id", r.HubID).Msg("checked out")
	t.bus.Publish(events.Event{Type: events.CheckInClosed, Record: r})
	return r, nil
}

// ActiveRecord returns the user's Active record at a hub, or nil.
func (t *Tracker) ActiveRecord(ctx context.Context, userID, hubID string) (*models.CheckInRecord, error) {
	return t.store.ActiveForPair(ctx, userID, hubID)
}

// History returns all of a user's check-in records.
func (t *Tracker) History(ctx context.Context, userID string) ([]models.CheckInRecord, error) {
	return t.store.ListForUser(ctx, userID)
}
