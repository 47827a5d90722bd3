package api

import (
	"net/http"
	"time"

	"github.com/Psybah/deskhive/internal/export"
	"github.com/Psybah/deskhive/internal/metrics"
)

// handleBookingsReport streams the monthly Excel report.
// GET /api/v1/reports/bookings?month=YYYY-MM
func (s *Server) handleBookingsReport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings_report")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.reports == nil {
		writeError(w, http.StatusNotFound, "reports are not enabled")
		return
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		monthStr = time.Now().UTC().Format("2006-01")
	}
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month format; expected YYYY-MM")
		return
	}

	buf, err := s.reports.MonthlyReport(r.Context(), month)
	if err != nil {
		s.log.Error().Err(err).Str("month", monthStr).Msg("failed to build report")
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(month)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
