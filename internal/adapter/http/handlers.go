package http

import (
	"bytes"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/flight-delay-insights/internal/adapter/report"
	"github.com/couchcryptid/flight-delay-insights/internal/adapter/xlsx"
)

const exportFilename = "airport_delays.xlsx"

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	f, err := parseTrendQuery(r.URL.Query(), "")
	if err != nil {
		s.badRequest(w, "trend", err)
		return
	}
	v, err := s.views.Trends(r.Context(), f)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) handleCauses(w http.ResponseWriter, r *http.Request) {
	f, err := parseCauseQuery(r.URL.Query(), "")
	if err != nil {
		s.badRequest(w, "cause", err)
		return
	}
	v, err := s.views.Causes(r.Context(), f)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	f, err := parseAirportQuery(r.URL.Query(), "")
	if err != nil {
		s.badRequest(w, "airport", err)
		return
	}
	v, err := s.views.Airports(r.Context(), f)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, v)
}

func (s *Server) handleAirportExport(w http.ResponseWriter, r *http.Request) {
	f, err := parseAirportQuery(r.URL.Query(), "")
	if err != nil {
		s.badRequest(w, "airport", err)
		return
	}
	v, err := s.views.Airports(r.Context(), f)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf, v.Rows); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	ranked, err := s.views.Rankings(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"airports": ranked})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.views.Options(r.Context(), r.URL.Query().Get("cause_airport"))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, opts)
}

// handleDashboard renders every view on one page. Filters use the view name as
// a prefix, e.g. trend_carrier, cause_airport, airport_year_from.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tf, err := parseTrendQuery(q, "trend_")
	if err != nil {
		s.badRequest(w, "trend", err)
		return
	}
	cf, err := parseCauseQuery(q, "cause_")
	if err != nil {
		s.badRequest(w, "cause", err)
		return
	}
	af, err := parseAirportQuery(q, "airport_")
	if err != nil {
		s.badRequest(w, "airport", err)
		return
	}

	var d report.Dashboard
	if d.Trend, err = s.views.Trends(r.Context(), tf); err != nil {
		s.internalError(w, r, err)
		return
	}
	if d.Cause, err = s.views.Causes(r.Context(), cf); err != nil {
		s.internalError(w, r, err)
		return
	}
	if d.Airport, err = s.views.Airports(r.Context(), af); err != nil {
		s.internalError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, d); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}
