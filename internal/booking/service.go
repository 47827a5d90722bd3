// Package booking owns the reservation lifecycle: conflict detection, the
// booking status machine, and the operations that move bookings through it.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Psybah/deskhive/internal/events"
	"github.com/Psybah/deskhive/internal/metrics"
	"github.com/Psybah/deskhive/internal/models"
	"github.com/Psybah/deskhive/internal/slots"
)

// Store persists bookings. Implementations must keep Insert and Update
// all-or-nothing: a failed commit after validation must not leave a partial
// booking behind.
type Store interface {
	Get(ctx context.Context, id string) (*models.Booking, error)
	Insert(ctx context.Context, b *models.Booking) error
	Update(ctx context.Context, b *models.Booking) error
	ListForWorkspace(ctx context.Context, workspaceID string) ([]models.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Booking, error)
}

// CatalogProvider resolves workspaces. Read-only, externally maintained.
type CatalogProvider interface {
	GetWorkspace(ctx context.Context, id string) (*models.Workspace, error)
}

// BatchResult reports the outcome of one item in a bulk operation.
type BatchResult struct {
	ID  string
	Err error
}

// Service is the reservation lifecycle manager. All mutating operations for
// a workspace are serialized on a per-workspace lock so that the conflict
// check and the commit appear as a single step.
type Service struct {
	store   Store
	catalog CatalogProvider
	bus     *events.Bus
	fsm     *FSM
	locks   *keyedLocks
	clock   func() time.Time
	logger  *zerolog.Logger
}

// NewService creates a lifecycle manager.
func NewService(store Store, catalog CatalogProvider, bus *events.Bus, logger *zerolog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		bus:     bus,
		fsm:     NewFSM(),
		locks:   newKeyedLocks(),
		clock:   time.Now,
		logger:  logger,
	}
}

// SetClock overrides the time source, for tests.
func (s *Service) SetClock(clock func() time.Time) { s.clock = clock }

// Create validates the slot, checks for conflicts and inserts a new booking
// in Confirmed state. Validation errors take precedence over conflict errors.
func (s *Service) Create(ctx context.Context, actor models.Actor, workspaceID string, slot models.TimeSlot, participants int, notes string) (*models.Booking, error) {
	ws, err := s.catalog.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !ws.Enabled {
		return nil, models.NewValidationError(models.CodeWorkspaceDisabled,
			"workspace %s is not open for booking", ws.Name)
	}
	if participants == 0 {
		// An omitted participant count means a solo visit.
		participants = 1
	}
	if err := slots.Validate(slot, ws, participants, s.clock()); err != nil {
		return nil, err
	}

	b, err := s.commitCreate(ctx, actor, workspaceID, slot, participants, notes)
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated(string(b.Status))
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("workspace_id", workspaceID).
		Str("user_id", actor.UserID).
		Str("slot", slot.String()).
		Msg("booking created")
	s.bus.Publish(events.Event{Type: events.BookingConfirmed, Booking: b})
	return b, nil
}

// commitCreate runs the conflict check and the insert under the workspace
// lock. Logging and event publication are the caller's job once the lock is
// released, so a slow subscriber never extends the critical section.
func (s *Service) commitCreate(ctx context.Context, actor models.Actor, workspaceID string, slot models.TimeSlot, participants int, notes string) (*models.Booking, error) {
	lock := s.locks.get(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.store.ListForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if conflicts := FindConflicts(slot, workspaceID, existing); len(conflicts) > 0 {
		metrics.IncBookingConflict()
		return nil, &models.ConflictError{Conflicts: conflicts}
	}

	now := s.clock()
	b := &models.Booking{
		ID:           uuid.NewString(),
		WorkspaceID:  workspaceID,
		UserID:       actor.UserID,
		Participants: participants,
		Notes:        notes,
		Status:       models.StatusConfirmed,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
	b.SetSlot(slot)

	if err := s.store.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reschedule moves a booking to a new slot. Only legal while the booking is
// Pending or Confirmed and has not yet elapsed; the booking keeps its id.
// Rescheduling to the identical slot is a no-op success.
func (s *Service) Reschedule(ctx context.Context, actor models.Actor, bookingID string, newSlot models.TimeSlot) (*models.Booking, error) {
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.fsm.Mutable(b.Status) {
		return nil, &models.StateError{Op: "reschedule", Status: string(b.Status)}
	}
	if b.Elapsed(s.clock()) {
		return nil, &models.StateError{Op: "reschedule", Status: "elapsed"}
	}
	if b.Slot().Equal(newSlot) {
		return b, nil
	}

	ws, err := s.catalog.GetWorkspace(ctx, b.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := slots.Validate(newSlot, ws, b.Participants, s.clock()); err != nil {
		return nil, err
	}

	b, oldSlot, changed, err := s.commitReschedule(ctx, bookingID, b.WorkspaceID, newSlot)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	metrics.IncBookingRescheduled()
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("from", oldSlot.String()).
		Str("to", newSlot.String()).
		Msg("booking rescheduled")
	s.bus.Publish(events.Event{Type: events.BookingRescheduled, Booking: b, PreviousSlot: &oldSlot})
	return b, nil
}

// commitReschedule re-reads the booking under the workspace lock, repeats
// the state guards against the fresh copy and commits the move. A false
// changed flag means a concurrent writer already landed the same slot.
func (s *Service) commitReschedule(ctx context.Context, bookingID, workspaceID string, newSlot models.TimeSlot) (b *models.Booking, oldSlot models.TimeSlot, changed bool, err error) {
	lock := s.locks.get(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; a concurrent transition may have won.
	b, err = s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, oldSlot, false, err
	}
	if !s.fsm.Mutable(b.Status) {
		return nil, oldSlot, false, &models.StateError{Op: "reschedule", Status: string(b.Status)}
	}
	if b.Slot().Equal(newSlot) {
		return b, oldSlot, false, nil
	}

	existing, err := s.store.ListForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, oldSlot, false, err
	}
	if conflicts := conflictsExcluding(newSlot, workspaceID, b.ID, existing); len(conflicts) > 0 {
		metrics.IncBookingConflict()
		return nil, oldSlot, false, &models.ConflictError{Conflicts: conflicts}
	}

	oldSlot = b.Slot()
	b.SetSlot(newSlot)
	b.UpdatedAt = s.clock()
	if err := s.store.Update(ctx, b); err != nil {
		return nil, oldSlot, false, err
	}
	return b, oldSlot, true, nil
}

// Extend lengthens a booking, holding the start fixed. Shortening must go
// through Reschedule.
func (s *Service) Extend(ctx context.Context, actor models.Actor, bookingID string, newEnd models.TimeOfDay) (*models.Booking, error) {
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if newEnd <= b.End {
		return nil, models.NewValidationError(models.CodeExtendNotLonger,
			"new end time %s must be after current end time %s", newEnd, b.End)
	}
	return s.Reschedule(ctx, actor, bookingID, models.TimeSlot{Date: b.Date, Start: b.Start, End: newEnd})
}

// Cancel transitions a booking to Cancelled. Cancelling an already-cancelled
// booking is a no-op, not an error.
func (s *Service) Cancel(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.StatusCancelled {
		return b, nil
	}
	if !s.fsm.CanTransition(b.Status, models.StatusCancelled) {
		return nil, &models.StateError{Op: "cancel", Status: string(b.Status)}
	}

	b, changed, err := s.commitCancel(ctx, bookingID, b.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	metrics.IncBookingCancelled()
	s.logger.Info().Str("booking_id", b.ID).Str("user_id", actor.UserID).Msg("booking cancelled")
	s.bus.Publish(events.Event{Type: events.BookingCancelled, Booking: b})
	return b, nil
}

// commitCancel re-reads the booking under the workspace lock so that the
// loser of a concurrent cancel observes Cancelled and degrades to the
// idempotent no-op instead of a version clash.
func (s *Service) commitCancel(ctx context.Context, bookingID, workspaceID string) (*models.Booking, bool, error) {
	lock := s.locks.get(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if b.Status == models.StatusCancelled {
		return b, false, nil
	}
	if !s.fsm.CanTransition(b.Status, models.StatusCancelled) {
		return nil, false, &models.StateError{Op: "cancel", Status: string(b.Status)}
	}

	b.Status = models.StatusCancelled
	b.UpdatedAt = s.clock()
	if err := s.store.Update(ctx, b); err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// CancelBatch cancels each booking independently, continuing past failures
// and reporting a per-item result list.
func (s *Service) CancelBatch(ctx context.Context, actor models.Actor, bookingIDs []string) []BatchResult {
	results := make([]BatchResult, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		_, err := s.Cancel(ctx, actor, id)
		results = append(results, BatchResult{ID: id, Err: err})
	}
	return results
}

// Complete is the system-driven transition once a Confirmed booking's end
// time has elapsed. Irreversible.
func (s *Service) Complete(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusConfirmed || !s.fsm.CanTransition(b.Status, models.StatusCompleted) {
		return nil, &models.StateError{Op: "complete", Status: string(b.Status)}
	}
	if !b.Elapsed(s.clock()) {
		return nil, &models.StateError{Op: "complete", Status: "not elapsed"}
	}

	b, changed, err := s.commitComplete(ctx, bookingID, b.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	s.bus.Publish(events.Event{Type: events.BookingCompleted, Booking: b})
	return b, nil
}

// commitComplete re-reads the booking under the workspace lock. A booking
// another sweep already completed is reported as-is, not as an error.
func (s *Service) commitComplete(ctx context.Context, bookingID, workspaceID string) (*models.Booking, bool, error) {
	lock := s.locks.get(workspaceID)
	lock.Lock()
	defer lock.Unlock()

	b, err := s.store.Get(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if b.Status == models.StatusCompleted {
		return b, false, nil
	}
	if b.Status != models.StatusConfirmed {
		return nil, false, &models.StateError{Op: "complete", Status: string(b.Status)}
	}

	b.Status = models.StatusCompleted
	b.UpdatedAt = s.clock()
	if err := s.store.Update(ctx, b); err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// CompleteElapsed sweeps all Confirmed bookings whose end time has passed
// into Completed. Returns the number of bookings completed.
func (s *Service) CompleteElapsed(ctx context.Context) (int, error) {
	elapsed, err := s.store.ListElapsedConfirmed(ctx, s.clock())
	if err != nil {
		return 0, err
	}
	completed := 0
	for i := range elapsed {
		if _, err := s.Complete(ctx, elapsed[i].ID); err != nil {
			s.logger.Error().Err(err).Str("booking_id", elapsed[i].ID).Msg("completion sweep failed for booking")
			continue
		}
		completed++
	}
	return completed, nil
}

// UserBookings splits a user's bookings into upcoming and past relative to
// now. Order within each list follows the store's ordering.
func (s *Service) UserBookings(ctx context.Context, userID string) (upcoming, past []models.Booking, err error) {
	all, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	now := s.clock()
	for _, b := range all {
		if b.Elapsed(now) {
			past = append(past, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}
	return upcoming, past, nil
}

// WorkspaceBookings returns a snapshot of a workspace's bookings for
// unlocked reads (availability grids, conflict previews).
func (s *Service) WorkspaceBookings(ctx context.Context, workspaceID string) ([]models.Booking, error) {
	return s.store.ListForWorkspace(ctx, workspaceID)
}

// Quote prices a slot: whole hours times the workspace's hourly rate.
func Quote(ws *models.Workspace, slot models.TimeSlot) int64 {
	return int64(slot.Hours()) * ws.PricePerHour
}
