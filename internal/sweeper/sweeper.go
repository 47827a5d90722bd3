// Package sweeper drives the system transition of elapsed Confirmed bookings
// into Completed.
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Completer is the slice of the lifecycle manager the sweeper needs.
type Completer interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

// Config holds sweeper settings.
type Config struct {
	// Interval is how often the sweep runs.
	Interval time.Duration
}

// DefaultConfig returns the default sweep interval.
func DefaultConfig() Config {
	return Config{Interval: time.Minute}
}

// Sweeper periodically completes elapsed bookings.
type Sweeper struct {
	config  Config
	svc     Completer
	logger  *zerolog.Logger
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// New creates a sweeper.
func New(config Config, svc Completer, logger *zerolog.Logger) *Sweeper {
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	return &Sweeper{
		config: config,
		svc:    svc,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start begins the sweep loop. Returns when the context is cancelled or
// Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info().Dur("interval", s.config.Interval).Msg("completion sweeper started")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("completion sweeper stopped by context")
			return
		case <-s.stopCh:
			s.logger.Info().Msg("completion sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop stops the sweep loop.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()
}

// RunNow forces an immediate sweep.
func (s *Sweeper) RunNow(ctx context.Context) {
	s.sweep(ctx)
}

func (s *Sweeper) sweep(ctx context.Context) {
	completed, err := s.svc.CompleteElapsed(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("completion sweep failed")
		return
	}
	if completed > 0 {
		s.logger.Info().Int("completed", completed).Msg("bookings completed")
	}
}
