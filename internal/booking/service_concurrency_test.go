package booking

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Psybah/deskhive/internal/events"
	"github.com/Psybah/deskhive/internal/models"
	"github.com/Psybah/deskhive/internal/storage"
)

// versionedStore is an in-memory Store that enforces the same optimistic
// version check on Update as the sqlite store.
type versionedStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newVersionedStore() *versionedStore {
	return &versionedStore{bookings: make(map[string]models.Booking)}
}

func (s *versionedStore) Get(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, &models.NotFoundError{Kind: "booking", ID: id}
	}
	return &b, nil
}

func (s *versionedStore) Insert(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = *b
	return nil
}

func (s *versionedStore) Update(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.bookings[b.ID]
	if !ok || cur.Version != b.Version {
		return storage.ErrConcurrentModification
	}
	b.Version++
	s.bookings[b.ID] = *b
	return nil
}

func (s *versionedStore) ListForWorkspace(_ context.Context, workspaceID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.WorkspaceID == workspaceID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *versionedStore) ListForUser(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *versionedStore) ListElapsedConfirmed(_ context.Context, now time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Status == models.StatusConfirmed && b.Elapsed(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func TestCancelRace(t *testing.T) {
	ctx := context.Background()
	actor := models.Actor{UserID: "user-1", Role: "member"}

	store := newVersionedStore()
	svc := newTestService(store, new(mockCatalog))

	b := &models.Booking{
		ID: "b1", WorkspaceID: "ws-001", UserID: "user-1", Date: testDay,
		Start: 9 * 60, End: 10 * 60,
		Status: models.StatusConfirmed, Version: 1,
	}
	assert.NoError(t, store.Insert(ctx, b))

	// Both cancels must succeed: the loser observes Cancelled under the
	// workspace lock and no-ops instead of clashing on the version.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Cancel(ctx, actor, "b1")
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	got, err := store.Get(ctx, "b1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestSlowSubscriberDoesNotHoldWorkspace(t *testing.T) {
	ctx := context.Background()
	actor := models.Actor{UserID: "user-1", Role: "member"}

	store := newVersionedStore()
	catalog := new(mockCatalog)
	catalog.On("GetWorkspace", mock.Anything, "ws-001").Return(testWorkspace(), nil)

	bus := events.NewBus()
	logger := zerolog.New(io.Discard)
	svc := NewService(store, catalog, bus, &logger)
	svc.SetClock(func() time.Time { return testNow })

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	bus.Subscribe(events.BookingConfirmed, func(events.Event) {
		once.Do(func() {
			close(entered)
			<-release
		})
	})

	first := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, actor, "ws-001", slotAt(9*60, 10*60), 2, "")
		first <- err
	}()
	<-entered

	// The first booking is committed but parked in its subscriber; a second
	// booking on the same workspace must still get through.
	second := make(chan error, 1)
	go func() {
		_, err := svc.Create(ctx, actor, "ws-001", slotAt(10*60, 11*60), 2, "")
		second <- err
	}()
	select {
	case err := <-second:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("create blocked behind another booking's event delivery")
	}

	close(release)
	assert.NoError(t, <-first)
}
