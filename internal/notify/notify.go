// Package notify fans booking and occupancy state changes out to
// notification channels. Delivery is fire-and-forget: a failed send never
// affects the state transition that triggered it.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Psybah/deskhive/internal/events"
	"github.com/Psybah/deskhive/internal/models"
)

// Sink receives rendered notification messages.
type Sink interface {
	Send(ctx context.Context, message string)
}

// Attach subscribes a sink to booking events on the bus.
func Attach(bus *events.Bus, sink Sink) {
	bus.Subscribe(events.BookingConfirmed, func(e events.Event) {
		sink.Send(context.Background(), formatConfirmed(e.Booking))
	})
	bus.Subscribe(events.BookingRescheduled, func(e events.Event) {
		sink.Send(context.Background(), formatRescheduled(e.Booking, e.PreviousSlot))
	})
	bus.Subscribe(events.BookingCancelled, func(e events.Event) {
		sink.Send(context.Background(), formatCancelled(e.Booking))
	})
}

func formatConfirmed(b *models.Booking) string {
	return fmt.Sprintf("Booking %s confirmed: workspace %s, %s %s-%s, %d participant(s)",
		b.ID, b.WorkspaceID, b.Date.Format("2006-01-02"), b.Start, b.End, b.Participants)
}

func formatRescheduled(b *models.Booking, old *models.TimeSlot) string {
	if old != nil {
		return fmt.Sprintf("Booking %s rescheduled: was %s, now %s", b.ID, old, b.Slot())
	}
	return fmt.Sprintf("Booking %s rescheduled to %s", b.ID, b.Slot())
}

func formatCancelled(b *models.Booking) string {
	return fmt.Sprintf("Booking %s cancelled: workspace %s, %s %s-%s",
		b.ID, b.WorkspaceID, b.Date.Format("2006-01-02"), b.Start, b.End)
}

// LogSink writes notifications to the structured log. Used when no external
// channel is configured.
type LogSink struct {
	logger *zerolog.Logger
}

// NewLogSink creates a log-backed sink.
func NewLogSink(logger *zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, message string) {
	s.logger.Info().Str("channel", "log").Msg(message)
}

// TelegramSink pushes notifications to an operations chat. Sends are rate
// limited to stay inside the bot API's per-chat budget.
type TelegramSink struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

// NewTelegramSink creates a Telegram-backed sink.
func NewTelegramSink(token string, chatID int64, logger *zerolog.Logger) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSink{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(20), 30),
		logger:  logger,
	}, nil
}

func (s *TelegramSink) Send(ctx context.Context, message string) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}
	msg := tgbotapi.NewMessage(s.chatID, message)
	if _, err := s.bot.Send(msg); err != nil {
		// Fire-and-forget: log and move on.
		s.logger.Error().Err(err).Msg("telegram notification failed")
	}
}
