package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Psybah/deskhive/internal/booking"
	"github.com/Psybah/deskhive/internal/metrics"
	"github.com/Psybah/deskhive/internal/models"
)

// CreateBookingRequest is the request body for POST /api/v1/bookings.
type CreateBookingRequest struct {
	WorkspaceID  string `json:"workspace_id"`
	Date         string `json:"date"`       // Format: YYYY-MM-DD
	StartTime    string `json:"start_time"` // Format: HH:MM
	EndTime      string `json:"end_time"`   // Format: HH:MM
	Participants int    `json:"participants,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// RescheduleRequest is the request body for POST /api/v1/bookings/{id}/reschedule.
type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ExtendRequest is the request body for POST /api/v1/bookings/{id}/extend.
type ExtendRequest struct {
	EndTime string `json:"end_time"`
}

// CancelBatchRequest is the request body for POST /api/v1/bookings/cancel-batch.
type CancelBatchRequest struct {
	BookingIDs []string `json:"booking_ids"`
}

// CancelBatchItem is one outcome within a batch cancellation.
type CancelBatchItem struct {
	BookingID string `json:"booking_id"`
	Cancelled bool   `json:"cancelled"`
	Error     string `json:"error,omitempty"`
}

// BookingResponse represents a booking in API responses.
type BookingResponse struct {
	ID           string    `json:"id"`
	WorkspaceID  string    `json:"workspace_id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Participants int       `json:"participants,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	Price        int64     `json:"price,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toBookingResponse(b *models.Booking, price int64) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		WorkspaceID:  b.WorkspaceID,
		UserID:       b.UserID,
		Date:         b.Date.Format("2006-01-02"),
		StartTime:    b.Start.String(),
		EndTime:      b.End.String(),
		Participants: b.Participants,
		Notes:        b.Notes,
		Status:       string(b.Status),
		Price:        price,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// parseSlot builds a TimeSlot from request strings. Format errors map onto
// the validator's BAD_TIME_FORMAT code so clients see one taxonomy.
func parseSlot(dateStr, startStr, endStr string) (models.TimeSlot, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return models.TimeSlot{}, models.NewValidationError(models.CodeBadTimeFormat, "invalid date %q; expected YYYY-MM-DD", dateStr)
	}
	start, err := models.ParseTimeOfDay(startStr)
	if err != nil {
		return models.TimeSlot{}, models.NewValidationError(models.CodeBadTimeFormat, "invalid start time %q; expected HH:MM", startStr)
	}
	end, err := models.ParseTimeOfDay(endStr)
	if err != nil {
		return models.TimeSlot{}, models.NewValidationError(models.CodeBadTimeFormat, "invalid end time %q; expected HH:MM", endStr)
	}
	return models.NewTimeSlot(date, start, end), nil
}

// handleBookings creates a booking or lists the caller's bookings.
// POST /api/v1/bookings, GET /api/v1/bookings
func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")
	switch r.Method {
	case http.MethodPost:
		s.handleCreateBooking(w, r)
	case http.MethodGet:
		s.handleListBookings(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req CreateBookingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.WorkspaceID == "" {
		writeError(w, http.StatusBadRequest, "workspace_id is required")
		return
	}

	slot, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	b, err := s.bookings.Create(r.Context(), act, req.WorkspaceID, slot, req.Participants, req.Notes)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toBookingResponse(b, s.quote(r, b)))
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	upcoming, past, err := s.bookings.UserBookings(r.Context(), act.UserID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := map[string][]BookingResponse{
		"upcoming": make([]BookingResponse, len(upcoming)),
		"past":     make([]BookingResponse, len(past)),
	}
	for i := range upcoming {
		resp["upcoming"][i] = toBookingResponse(&upcoming[i], 0)
	}
	for i := range past {
		resp["past"][i] = toBookingResponse(&past[i], 0)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBookingAction routes /api/v1/bookings/cancel-batch and
// /api/v1/bookings/{id}/{reschedule|extend|cancel}.
func (s *Server) handleBookingAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	parts := pathSuffix(r, "/api/v1/bookings/")
	if len(parts) == 1 && parts[0] == "cancel-batch" {
		s.handleCancelBatch(w, r)
		return
	}
	if len(parts) != 2 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	id := parts[0]
	switch parts[1] {
	case "reschedule":
		s.handleReschedule(w, r, id)
	case "extend":
		s.handleExtend(w, r, id)
	case "cancel":
		s.handleCancel(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleReschedule(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("booking_reschedule")
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req RescheduleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	slot, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	b, err := s.bookings.Reschedule(r.Context(), act, id, slot)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(b, s.quote(r, b)))
}

func (s *Server) handleExtend(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("booking_extend")
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req ExtendRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	newEnd, err := models.ParseTimeOfDay(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end time; expected HH:MM")
		return
	}

	b, err := s.bookings.Extend(r.Context(), act, id, newEnd)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(b, s.quote(r, b)))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("booking_cancel")
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	b, err := s.bookings.Cancel(r.Context(), act, id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(b, 0))
}

func (s *Server) handleCancelBatch(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("booking_cancel_batch")
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req CancelBatchRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.BookingIDs) == 0 {
		writeError(w, http.StatusBadRequest, "booking_ids is required")
		return
	}

	results := s.bookings.CancelBatch(r.Context(), act, req.BookingIDs)
	items := make([]CancelBatchItem, len(results))
	for i, res := range results {
		items[i] = CancelBatchItem{BookingID: res.ID, Cancelled: res.Err == nil}
		if res.Err != nil {
			items[i].Error = res.Err.Error()
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// quote prices a booking against its workspace. Best effort; a missing
// workspace just leaves the price off the response.
func (s *Server) quote(r *http.Request, b *models.Booking) int64 {
	ws, err := s.catalog.GetWorkspace(r.Context(), b.WorkspaceID)
	if err != nil {
		return 0
	}
	return booking.Quote(ws, b.Slot())
}
