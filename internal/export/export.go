// Package export builds booking and occupancy reports as Excel workbooks.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

// ReportSource provides the data the report is built from.
type ReportSource interface {
	BookingsInRange(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	CheckInsInRange(ctx context.Context, from, to time.Time) ([]models.CheckInRecord, error)
}

// ExcelWriter writes tabular data to an Excel workbook.
type ExcelWriter interface {
	AddSheet(name string) error
	WriteHeader(columns []string) error
	WriteRow(row []interface{}) error
	Save(w io.Writer) error
	Close() error
}

// Service builds monthly reports.
type Service struct {
	source ReportSource
	writer func() ExcelWriter
}

// NewService creates a report service. writerFactory yields a fresh workbook
// per report.
func NewService(source ReportSource, writerFactory func() ExcelWriter) *Service {
	return &Service{source: source, writer: writerFactory}
}

// Filename names the workbook for a month, e.g. "deskhive_2026-08.xlsx".
func Filename(month time.Time) string {
	return fmt.Sprintf("deskhive_%s.xlsx", month.Format("2006-01"))
}

// MonthlyReport renders the bookings and occupancy of one calendar month.
func (s *Service) MonthlyReport(ctx context.Context, month time.Time) (*bytes.Buffer, error) {
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	w := s.writer()
	defer func() { _ = w.Close() }()

	if err := s.writeBookings(ctx, w, from, to); err != nil {
		return nil, err
	}
	if err := s.writeOccupancy(ctx, w, from, to); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return &buf, nil
}

func (s *Service) writeBookings(ctx context.Context, w ExcelWriter, from, to time.Time) error {
	bookings, err := s.source.BookingsInRange(ctx, from, to.AddDate(0, 0, -1))
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}

	if err := w.AddSheet("Bookings"); err != nil {
		return err
	}
	header := []string{"ID", "Workspace", "User", "Date", "Start", "End", "Participants", "Status", "Created"}
	if err := w.WriteHeader(header); err != nil {
		return err
	}
	for _, b := range bookings {
		row := []interface{}{
			b.ID, b.WorkspaceID, b.UserID,
			b.Date.Format("2006-01-02"), b.Start.String(), b.End.String(),
			b.Participants, string(b.Status), b.CreatedAt.Format(time.RFC3339),
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeOccupancy(ctx context.Context, w ExcelWriter, from, to time.Time) error {
	records, err := s.source.CheckInsInRange(ctx, from, to)
	if err != nil {
		return fmt.Errorf("load check-ins: %w", err)
	}

	if err := w.AddSheet("Occupancy"); err != nil {
		return err
	}
	header := []string{"ID", "User", "Hub", "Booking", "Check-in", "Check-out", "Status"}
	if err := w.WriteHeader(header); err != nil {
		return err
	}
	for _, r := range records {
		checkOut := ""
		if r.CheckOutTime != nil {
			checkOut = r.CheckOutTime.Format(time.RFC3339)
		}
		row := []interface{}{
			r.ID, r.UserID, r.HubID, r.BookingID,
			r.CheckInTime.Format(time.RFC3339), checkOut, string(r.Status),
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}
