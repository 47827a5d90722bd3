package api

import (
	"net/http"
	"time"

	"github.com/Psybah/deskhive/internal/cache"
	"github.com/Psybah/deskhive/internal/catalog"
	"github.com/Psybah/deskhive/internal/metrics"
	"github.com/Psybah/deskhive/internal/models"
	"github.com/Psybah/deskhive/internal/slots"
)

// WorkspaceResponse represents a workspace in API responses.
type WorkspaceResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Capacity     int      `json:"capacity"`
	PricePerHour int64    `json:"price_per_hour"`
	Description  string   `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// SlotResponse is one hour of the availability grid.
type SlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// AvailabilityResponse is the response for GET /api/v1/workspaces/{id}/availability.
type AvailabilityResponse struct {
	WorkspaceID string         `json:"workspace_id"`
	Date        string         `json:"date"`
	Slots       []SlotResponse `json:"slots"`
}

func toWorkspaceResponse(ws *models.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:           ws.ID,
		Name:         ws.Name,
		Type:         string(ws.Type),
		Location:     ws.Location,
		Capacity:     ws.Capacity,
		PricePerHour: ws.PricePerHour,
		Description:  ws.Description,
		Features:     ws.Features,
	}
}

// handleWorkspaces lists the catalog, optionally filtered.
// GET /api/v1/workspaces?q=&location=&type=&date=YYYY-MM-DD
func (s *Server) handleWorkspaces(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("workspaces")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := catalog.Query{
		Text:     r.URL.Query().Get("q"),
		Location: r.URL.Query().Get("location"),
		Type:     models.WorkspaceType(r.URL.Query().Get("type")),
	}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
			return
		}
		query.Date = &date
	}

	unfiltered := query.Text == "" && query.Location == "" && query.Type == "" && query.Date == nil
	if unfiltered {
		var cached []WorkspaceResponse
		if s.cache.Get(r.Context(), cache.WorkspacesKey(), &cached) {
			writeJSON(w, http.StatusOK, map[string]any{"workspaces": cached})
			return
		}
	}

	result, err := s.index.Search(r.Context(), query)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	workspaces := make([]WorkspaceResponse, len(result))
	for i := range result {
		workspaces[i] = toWorkspaceResponse(&result[i])
	}

	if unfiltered {
		s.cache.Set(r.Context(), cache.WorkspacesKey(), workspaces)
	}
	writeJSON(w, http.StatusOK, map[string]any{"workspaces": workspaces})
}

// handleWorkspaceByID routes /api/v1/workspaces/{id} and
// /api/v1/workspaces/{id}/availability.
func (s *Server) handleWorkspaceByID(w http.ResponseWriter, r *http.Request) {
	parts := pathSuffix(r, "/api/v1/workspaces/")
	switch {
	case len(parts) == 1:
		s.handleWorkspaceDetail(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "availability":
		s.handleAvailability(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// handleWorkspaceDetail returns one workspace.
// GET /api/v1/workspaces/{id}
func (s *Server) handleWorkspaceDetail(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("workspace_detail")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ws, err := s.catalog.GetWorkspace(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkspaceResponse(ws))
}

// handleAvailability returns the hourly grid for one workspace and date.
// GET /api/v1/workspaces/{id}/availability?date=YYYY-MM-DD
func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request, id string) {
	metrics.IncHTTP("availability")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format; expected YYYY-MM-DD")
		return
	}

	if _, err := s.catalog.GetWorkspace(r.Context(), id); err != nil {
		s.writeServiceError(w, err)
		return
	}

	key := cache.AvailabilityKey(id, date)
	var cached AvailabilityResponse
	if s.cache.Get(r.Context(), key, &cached) {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	bookings, err := s.bookings.WorkspaceBookings(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	grid := slots.Grid(date, bookings, time.Now())
	resp := AvailabilityResponse{
		WorkspaceID: id,
		Date:        dateStr,
		Slots:       make([]SlotResponse, len(grid)),
	}
	for i, slot := range grid {
		resp.Slots[i] = SlotResponse{
			Start:     slot.Start.String(),
			End:       slot.End.String(),
			Available: slot.Available,
		}
	}

	s.cache.Set(r.Context(), key, resp)
	writeJSON(w, http.StatusOK, resp)
}
