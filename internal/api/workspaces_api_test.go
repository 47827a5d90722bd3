package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Psybah/deskhive/internal/models"
)

func TestHandleWorkspaces(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("list excludes disabled", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Workspaces []WorkspaceResponse `json:"workspaces"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.Workspaces) != 2 {
			t.Errorf("got %d workspaces, want 2", len(resp.Workspaces))
		}
		for _, ws := range resp.Workspaces {
			if ws.ID == "ws-003" {
				t.Error("disabled workspace in listing")
			}
		}
	})

	t.Run("text search", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces?q=innovation", "", nil)
		var resp struct {
			Workspaces []WorkspaceResponse `json:"workspaces"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp.Workspaces) != 1 || resp.Workspaces[0].ID != "ws-001" {
			t.Errorf("workspaces = %v, want just ws-001", resp.Workspaces)
		}
	})

	t.Run("location filter", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces?location=Abuja", "", nil)
		var resp struct {
			Workspaces []WorkspaceResponse `json:"workspaces"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if len(resp.Workspaces) != 1 || resp.Workspaces[0].ID != "ws-002" {
			t.Errorf("workspaces = %v, want just ws-002", resp.Workspaces)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces?date=tomorrow", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("detail", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces/ws-001", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var resp WorkspaceResponse
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Name != "Innovation Hub" {
			t.Errorf("name = %q", resp.Name)
		}
	})

	t.Run("detail not found", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces/ws-999", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestHandleAvailability(t *testing.T) {
	srv := setupTestServer(t)
	date := futureDate()

	doRequest(srv, http.MethodPost, "/api/v1/bookings", "user-1", CreateBookingRequest{
		WorkspaceID: "ws-001", Date: date, StartTime: "09:00", EndTime: "11:00",
	})

	t.Run("grid marks booked hours", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces/ws-001/availability?date="+date, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}

		var resp AvailabilityResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.Slots) != 10 {
			t.Fatalf("got %d slots, want 10", len(resp.Slots))
		}
		for _, s := range resp.Slots {
			booked := s.Start == "09:00" || s.Start == "10:00"
			if s.Available == booked {
				t.Errorf("slot %s-%s: available = %v", s.Start, s.End, s.Available)
			}
		}
	})

	t.Run("missing date", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces/ws-001/availability", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown workspace", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/workspaces/ws-999/availability?date="+date, "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestHandleCheckIns(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("check in and out", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/v1/checkins", "user-1", CheckInRequest{HubID: "hub-lagos"})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var rec CheckInResponse
		_ = json.Unmarshal(w.Body.Bytes(), &rec)
		if rec.Status != string(models.CheckInActive) {
			t.Errorf("status = %q, want active", rec.Status)
		}

		// A second check-in at the same hub while active.
		dup := doRequest(srv, http.MethodPost, "/api/v1/checkins", "user-1", CheckInRequest{HubID: "hub-lagos"})
		if dup.Code != http.StatusBadRequest {
			t.Errorf("duplicate check-in status = %d, want %d", dup.Code, http.StatusBadRequest)
		}
		var dupErr ErrorResponse
		_ = json.Unmarshal(dup.Body.Bytes(), &dupErr)
		if dupErr.Code != models.CodeAlreadyActive {
			t.Errorf("code = %q, want %q", dupErr.Code, models.CodeAlreadyActive)
		}

		out := doRequest(srv, http.MethodPost, "/api/v1/checkins/"+rec.ID+"/checkout", "user-1", nil)
		if out.Code != http.StatusOK {
			t.Fatalf("checkout status = %d: %s", out.Code, out.Body.String())
		}
		var closed CheckInResponse
		_ = json.Unmarshal(out.Body.Bytes(), &closed)
		if closed.Status != string(models.CheckInCompleted) {
			t.Errorf("status = %q, want completed", closed.Status)
		}
		if closed.CheckOutTime == nil {
			t.Error("check-out time not set")
		}

		// Closed means the pair may check in again.
		again := doRequest(srv, http.MethodPost, "/api/v1/checkins", "user-1", CheckInRequest{HubID: "hub-lagos"})
		if again.Code != http.StatusCreated {
			t.Errorf("re-check-in status = %d, want %d", again.Code, http.StatusCreated)
		}
	})

	t.Run("missing hub", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/v1/checkins", "user-1", CheckInRequest{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("double checkout", func(t *testing.T) {
		w := doRequest(srv, http.MethodPost, "/api/v1/checkins", "user-3", CheckInRequest{HubID: "hub-abuja"})
		var rec CheckInResponse
		_ = json.Unmarshal(w.Body.Bytes(), &rec)

		first := doRequest(srv, http.MethodPost, "/api/v1/checkins/"+rec.ID+"/checkout", "user-3", nil)
		if first.Code != http.StatusOK {
			t.Fatalf("checkout status = %d", first.Code)
		}
		second := doRequest(srv, http.MethodPost, "/api/v1/checkins/"+rec.ID+"/checkout", "user-3", nil)
		if second.Code != http.StatusBadRequest {
			t.Errorf("second checkout status = %d, want %d", second.Code, http.StatusBadRequest)
		}
	})

	t.Run("history", func(t *testing.T) {
		w := doRequest(srv, http.MethodGet, "/api/v1/checkins", "user-1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			CheckIns []CheckInResponse `json:"checkins"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(resp.CheckIns) != 2 {
			t.Errorf("got %d records, want 2", len(resp.CheckIns))
		}
	})
}
