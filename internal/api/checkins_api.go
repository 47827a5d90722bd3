package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Psybah/deskhive/internal/metrics"
	"github.com/Psybah/deskhive/internal/models"
)

// CheckInRequest is the request body for POST /api/v1/checkins.
type CheckInRequest struct {
	HubID     string `json:"hub_id"`
	BookingID string `json:"booking_id,omitempty"`
}

// CheckOutRequest is the request body for POST /api/v1/checkins/{id}/checkout.
// CheckOutTime backfills a missed checkout; empty means "now".
type CheckOutRequest struct {
	CheckOutTime string `json:"check_out_time,omitempty"` // RFC 3339
}

// CheckInResponse represents a check-in record in API responses.
type CheckInResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	HubID        string     `json:"hub_id"`
	BookingID    string     `json:"booking_id,omitempty"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Status       string     `json:"status"`
}

func toCheckInResponse(rec *models.CheckInRecord) CheckInResponse {
	return CheckInResponse{
		ID:           rec.ID,
		UserID:       rec.UserID,
		HubID:        rec.HubID,
		BookingID:    rec.BookingID,
		CheckInTime:  rec.CheckInTime,
		CheckOutTime: rec.CheckOutTime,
		Status:       string(rec.Status),
	}
}

// handleCheckIns opens a check-in or lists the caller's history.
// POST /api/v1/checkins, GET /api/v1/checkins
func (s *Server) handleCheckIns(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("checkins")
	switch r.Method {
	case http.MethodPost:
		s.handleCheckIn(w, r)
	case http.MethodGet:
		s.handleCheckInHistory(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req CheckInRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.HubID == "" {
		writeError(w, http.StatusBadRequest, "hub_id is required")
		return
	}

	rec, err := s.tracker.CheckIn(r.Context(), act.UserID, req.HubID, req.BookingID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCheckInResponse(rec))
}

func (s *Server) handleCheckInHistory(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	records, err := s.tracker.History(r.Context(), act.UserID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]CheckInResponse, len(records))
	for i := range records {
		resp[i] = toCheckInResponse(&records[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"checkins": resp})
}

// handleCheckInAction routes POST /api/v1/checkins/{id}/checkout.
func (s *Server) handleCheckInAction(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("checkout")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed; use POST")
		return
	}

	parts := pathSuffix(r, "/api/v1/checkins/")
	if len(parts) != 2 || parts[1] != "checkout" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id := parts[0]

	var req CheckOutRequest
	if r.ContentLength > 0 {
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	var rec *models.CheckInRecord
	var err error
	if req.CheckOutTime != "" {
		at, parseErr := time.Parse(time.RFC3339, req.CheckOutTime)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "invalid check_out_time; expected RFC 3339")
			return
		}
		rec, err = s.tracker.CheckOutAt(r.Context(), id, at)
	} else {
		rec, err = s.tracker.CheckOut(r.Context(), id)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckInResponse(rec))
}
