package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

// CheckInStore adapts DB to the occupancy tracker's store interface.
type CheckInStore struct {
	db *DB
}

// NewCheckInStore wraps a DB for the occupancy tracker.
func NewCheckInStore(db *DB) *CheckInStore {
	return &CheckInStore{db: db}
}

func (s *CheckInStore) Get(ctx context.Context, id string) (*models.CheckInRecord, error) {
	return s.db.GetCheckIn(ctx, id)
}

func (s *CheckInStore) Insert(ctx context.Context, r *models.CheckInRecord) error {
	return s.db.InsertCheckIn(ctx, r)
}

func (s *CheckInStore) Update(ctx context.Context, r *models.CheckInRecord) error {
	return s.db.UpdateCheckIn(ctx, r)
}

func (s *CheckInStore) ActiveForPair(ctx context.Context, userID, hubID string) (*models.CheckInRecord, error) {
	return s.db.ActiveCheckInForPair(ctx, userID, hubID)
}

func (s *CheckInStore) ListForUser(ctx context.Context, userID string) ([]models.CheckInRecord, error) {
	return s.db.ListCheckInsForUser(ctx, userID)
}

const checkinColumns = `id, booking_id, user_id, hub_id, check_in_time, check_out_time, status`

// GetCheckIn returns a check-in record by id.
func (db *DB) GetCheckIn(ctx context.Context, id string) (*models.CheckInRecord, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+checkinColumns+` FROM checkins WHERE id = ?`, id)
	r, err := scanCheckIn(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Kind: "check-in record", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get check-in: %w", err)
	}
	return r, nil
}

// InsertCheckIn creates a record. The partial unique index on active records
// backs up the tracker's per-pair serialization.
func (db *DB) InsertCheckIn(ctx context.Context, r *models.CheckInRecord) error {
	var bookingID any
	if r.BookingID != "" {
		bookingID = r.BookingID
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO checkins (`+checkinColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, bookingID, r.UserID, r.HubID, r.CheckInTime, r.CheckOutTime, string(r.Status),
	)
	if err != nil {
		return fmt.Errorf("insert check-in: %w", err)
	}
	return nil
}

// UpdateCheckIn persists the single mutation a record ever receives:
// check-out time and status.
func (db *DB) UpdateCheckIn(ctx context.Context, r *models.CheckInRecord) error {
	result, err := db.ExecContext(ctx, `
		UPDATE checkins SET check_out_time = ?, status = ? WHERE id = ?`,
		r.CheckOutTime, string(r.Status), r.ID,
	)
	if err != nil {
		return fmt.Errorf("update check-in: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &models.NotFoundError{Kind: "check-in record", ID: r.ID}
	}
	return nil
}

// ActiveCheckInForPair returns the Active record for a (user, hub) pair, or
// nil when the user is not checked in there.
func (db *DB) ActiveCheckInForPair(ctx context.Context, userID, hubID string) (*models.CheckInRecord, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE user_id = ? AND hub_id = ? AND status = 'active'
		LIMIT 1`, userID, hubID)
	r, err := scanCheckIn(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active check-in: %w", err)
	}
	return r, nil
}

// ListCheckInsForUser returns a user's full check-in history, newest first.
func (db *DB) ListCheckInsForUser(ctx context.Context, userID string) ([]models.CheckInRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE user_id = ?
		ORDER BY check_in_time DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	var records []models.CheckInRecord
	for rows.Next() {
		r, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// CheckInsInRange returns records whose check-in time falls in [from, to),
// for reports.
func (db *DB) CheckInsInRange(ctx context.Context, from, to time.Time) ([]models.CheckInRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE check_in_time >= ? AND check_in_time < ?
		ORDER BY check_in_time`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list check-ins in range: %w", err)
	}
	defer rows.Close()

	var records []models.CheckInRecord
	for rows.Next() {
		r, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func scanCheckIn(row rowScanner) (*models.CheckInRecord, error) {
	var r models.CheckInRecord
	var bookingID sql.NullString
	var checkOut sql.NullTime
	var status string
	err := row.Scan(&r.ID, &bookingID, &r.UserID, &r.HubID, &r.CheckInTime, &checkOut, &status)
	if err != nil {
		return nil, err
	}
	if bookingID.Valid {
		r.BookingID = bookingID.String
	}
	if checkOut.Valid {
		t := checkOut.Time
		r.CheckOutTime = &t
	}
	r.Status = models.CheckInStatus(status)
	return &r, nil
}
