// Package api exposes the reservation core over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Psybah/deskhive/internal/booking"
	"github.com/Psybah/deskhive/internal/cache"
	"github.com/Psybah/deskhive/internal/catalog"
	"github.com/Psybah/deskhive/internal/export"
	"github.com/Psybah/deskhive/internal/models"
	"github.com/Psybah/deskhive/internal/occupancy"
	"github.com/Psybah/deskhive/internal/storage"
)

// Server is the HTTP front for bookings, occupancy and the catalog.
type Server struct {
	server   *http.Server
	bookings *booking.Service
	tracker  *occupancy.Tracker
	index    *catalog.Index
	catalog  catalog.Provider
	reports  *export.Service
	cache    *cache.Cache
	log      zerolog.Logger
}

// NewServer wires the handlers. reports and cache may be nil.
func NewServer(addr string, bookings *booking.Service, tracker *occupancy.Tracker, index *catalog.Index, provider catalog.Provider, reports *export.Service, c *cache.Cache, logger *zerolog.Logger) *Server {
	s := &Server{
		bookings: bookings,
		tracker:  tracker,
		index:    index,
		catalog:  provider,
		reports:  reports,
		cache:    c,
		log:      logger.With().Str("component", "api").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/workspaces", s.handleWorkspaces)
	mux.HandleFunc("/api/v1/workspaces/", s.handleWorkspaceByID)
	mux.HandleFunc("/api/v1/bookings", s.handleBookings)
	mux.HandleFunc("/api/v1/bookings/", s.handleBookingAction)
	mux.HandleFunc("/api/v1/checkins", s.handleCheckIns)
	mux.HandleFunc("/api/v1/checkins/", s.handleCheckInAction)
	mux.HandleFunc("/api/v1/reports/bookings", s.handleBookingsReport)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// actor resolves the caller from the X-User-ID header. Identity is asserted
// by the gateway in front of this service; absence is a client error.
func actor(r *http.Request) (models.Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		return models.Actor{}, false
	}
	role := strings.TrimSpace(r.Header.Get("X-User-Role"))
	if role == "" {
		role = "member"
	}
	return models.Actor{UserID: userID, Role: role}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unclassified is a 500 and gets logged; classified errors carry messages
// already safe to surface.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var ce *models.ConflictError
	var se *models.StateError
	var nf *models.NotFoundError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": ve.Message,
			"code":  ve.Code,
		})
	case errors.As(err, &ce):
		conflicts := make([]BookingResponse, len(ce.Conflicts))
		for i := range ce.Conflicts {
			conflicts[i] = toBookingResponse(&ce.Conflicts[i], 0)
		}
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     "requested slot is already taken",
			"conflicts": conflicts,
		})
	case errors.As(err, &se):
		writeError(w, http.StatusConflict, se.Error())
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, storage.ErrConcurrentModification):
		writeError(w, http.StatusConflict, "booking was modified concurrently, retry the request")
	case errors.Is(err, storage.ErrSlotTaken):
		writeError(w, http.StatusConflict, "requested slot is already taken")
	default:
		s.log.Error().Err(err).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathSuffix strips prefix from the URL path and splits the rest.
func pathSuffix(r *http.Request, prefix string) []string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}
