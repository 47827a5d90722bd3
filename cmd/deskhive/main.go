package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Psybah/deskhive/internal/api"
	"github.com/Psybah/deskhive/internal/booking"
	"github.com/Psybah/deskhive/internal/cache"
	"github.com/Psybah/deskhive/internal/catalog"
	"github.com/Psybah/deskhive/internal/config"
	"github.com/Psybah/deskhive/internal/events"
	"github.com/Psybah/deskhive/internal/export"
	"github.com/Psybah/deskhive/internal/metrics"
	"github.com/Psybah/deskhive/internal/notify"
	"github.com/Psybah/deskhive/internal/occupancy"
	"github.com/Psybah/deskhive/internal/slots"
	"github.com/Psybah/deskhive/internal/storage"
	"github.com/Psybah/deskhive/internal/sweeper"
)

func main() {
	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	// .env feeds the ${ENV_VAR} placeholders in the YAML config.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("DESKHIVE_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := storage.New(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.SeedWorkspaces(ctx, catalog.Seed()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed workspaces")
	}

	var rdb *redis.Client
	var c *cache.Cache
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		c = cache.New(rdb, cfg.CacheTTL())
	}

	bus := events.NewBus()
	bookings := booking.NewService(db, db, bus, &logger)
	tracker := occupancy.NewTracker(storage.NewCheckInStore(db), bus, &logger)

	index := catalog.NewIndex(db, func(ctx context.Context, workspaceID string, date time.Time) (bool, error) {
		dayBookings, err := bookings.WorkspaceBookings(ctx, workspaceID)
		if err != nil {
			return false, err
		}
		return slots.HasFreeHour(date, dayBookings, time.Now()), nil
	})

	if c != nil {
		attachCacheInvalidation(bus, c)
	}

	var sink notify.Sink
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegramSink(cfg.Telegram.BotToken, cfg.Telegram.ChatID, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("create telegram sink error")
		}
		sink = tg
	} else {
		sink = notify.NewLogSink(&logger)
	}
	notify.Attach(bus, sink)

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	sw := sweeper.New(sweeper.Config{Interval: cfg.SweepInterval()}, bookings, &logger)
	go sw.Start(ctx)

	if cfg.Backup.Enabled {
		backup := storage.NewBackupService(cfg.Database.Path, storage.BackupConfig{
			Enabled:       true,
			Interval:      cfg.BackupInterval(),
			StoragePath:   cfg.Backup.Path,
			RetentionDays: cfg.Backup.RetentionDays,
		}, &logger)
		go backup.Start(ctx)
	}

	reports := export.NewService(db, export.NewExcelizeWriter)
	server := api.NewServer(cfg.Server.Address, bookings, tracker, index, db, reports, c, &logger)

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctxShutdown)
	}()

	logger.Info().Msg("deskhive started")
	if err := server.Start(); err != nil {
		logger.Fatal().Err(err).Msg("http server error")
	}
}

// attachCacheInvalidation drops cached availability grids whenever a booking
// changes, so reads after a commit never serve the stale grid.
func attachCacheInvalidation(bus *events.Bus, c *cache.Cache) {
	invalidate := func(e events.Event) {
		if e.Booking == nil {
			return
		}
		keys := []string{cache.AvailabilityKey(e.Booking.WorkspaceID, e.Booking.Date)}
		if e.PreviousSlot != nil {
			keys = append(keys, cache.AvailabilityKey(e.Booking.WorkspaceID, e.PreviousSlot.Date))
		}
		c.Invalidate(context.Background(), keys...)
	}
	for _, t := range []events.EventType{
		events.BookingConfirmed,
		events.BookingRescheduled,
		events.BookingCancelled,
		events.BookingCompleted,
	} {
		bus.Subscribe(t, invalidate)
	}
}

func startHealthServer(ctx context.Context, port int, db *storage.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
