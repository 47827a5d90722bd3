// Package events provides in-process pub/sub for domain events.
package events

import (
	"sync"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

// EventType names a state change in the core.
type EventType string

const (
	BookingConfirmed   EventType = "booking.confirmed"
	BookingRescheduled EventType = "booking.rescheduled"
	BookingCancelled   EventType = "booking.cancelled"
	BookingCompleted   EventType = "booking.completed"
	CheckInOpened      EventType = "checkin.opened"
	CheckInClosed      EventType = "checkin.closed"
)

// Event describes a committed state change. Booking is set for booking
// events, Record for occupancy events.
type Event struct {
	Type         EventType
	Booking      *models.Booking
	PreviousSlot *models.TimeSlot
	Record       *models.CheckInRecord
	At           time.Time
}

// Handler reacts to an event. Handlers run synchronously on the publisher's
// goroutine; a handler that may block should hand off internally.
type Handler func(event Event)

// Bus fans events out to subscribers.
type Bus struct {
	subscribers map[EventType][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type. Publishing never fails:
// state transitions must not roll back on notification trouble.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.At.IsZero() {
		event.At = time.Now()
	}
	for _, handler := range handlers {
		handler(event)
	}
}
