package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

const bookingColumns = `id, workspace_id, user_id, date, start_min, end_min,
	participants, notes, status, created_at, updated_at, version`

// Get returns a booking by id.
func (db *DB) Get(ctx context.Context, id string) (*models.Booking, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Kind: "booking", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// Insert creates a booking. The slot is re-checked inside the transaction so
// that a writer bypassing the lifecycle manager's lock still cannot
// double-book; the insert is all-or-nothing.
func (db *DB) Insert(ctx context.Context, b *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var blocked int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE workspace_id = ? AND date = ?
		AND start_min < ? AND end_min > ?
		AND status IN ('pending', 'confirmed')`,
		b.WorkspaceID, dateKey(b.Date), int(b.End), int(b.Start),
	).Scan(&blocked)
	if err != nil {
		return fmt.Errorf("conflict re-check: %w", err)
	}
	if blocked > 0 {
		return ErrSlotTaken
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.WorkspaceID, b.UserID, dateKey(b.Date), int(b.Start), int(b.End),
		b.Participants, b.Notes, string(b.Status), b.CreatedAt, b.UpdatedAt, b.Version,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Update persists a booking under its optimistic version; the stored version
// must match the booking's current one.
func (db *DB) Update(ctx context.Context, b *models.Booking) error {
	result, err := db.ExecContext(ctx, `
		UPDATE bookings
		SET date = ?, start_min = ?, end_min = ?, participants = ?, notes = ?,
		    status = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`,
		dateKey(b.Date), int(b.Start), int(b.End), b.Participants, b.Notes,
		string(b.Status), b.UpdatedAt, b.ID, b.Version,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConcurrentModification
	}
	b.Version++
	return nil
}

// ListForWorkspace returns all bookings for a workspace ordered by date and
// start time.
func (db *DB) ListForWorkspace(ctx context.Context, workspaceID string) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE workspace_id = ?
		ORDER BY date, start_min`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collectBookings(rows)
}

// ListForUser returns all bookings created by a user, newest day first.
func (db *DB) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE user_id = ?
		ORDER BY date DESC, start_min`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return collectBookings(rows)
}

// ListElapsedConfirmed returns Confirmed bookings whose end time has passed,
// the completion sweeper's work list.
func (db *DB) ListElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Booking, error) {
	today := dateKey(now)
	minutes := now.Hour()*60 + now.Minute()
	rows, err := db.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE status = 'confirmed'
		AND (date < ? OR (date = ? AND end_min <= ?))
		ORDER BY date, start_min`,
		today, today, minutes)
	if err != nil {
		return nil, fmt.Errorf("list elapsed bookings: %w", err)
	}
	return collectBookings(rows)
}

// BookingsInRange returns bookings within [from, to] by date, for reports.
func (db *DB) BookingsInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_min`, dateKey(from), dateKey(to))
	if err != nil {
		return nil, fmt.Errorf("list bookings in range: %w", err)
	}
	return collectBookings(rows)
}

func dateKey(t time.Time) string {
	return models.DateOnly(t).Format("2006-01-02")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var date, status string
	var start, end int
	var notes sql.NullString
	err := row.Scan(
		&b.ID, &b.WorkspaceID, &b.UserID, &date, &start, &end,
		&b.Participants, &notes, &status, &b.CreatedAt, &b.UpdatedAt, &b.Version,
	)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse booking date %q: %w", date, err)
	}
	b.Date = day
	b.Start = models.TimeOfDay(start)
	b.End = models.TimeOfDay(end)
	b.Status = models.BookingStatus(status)
	if notes.Valid {
		b.Notes = notes.String
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()
	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
