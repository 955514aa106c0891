package web

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/emiliopalmerini/churnboard/internal/domain"
	"github.com/emiliopalmerini/churnboard/internal/export"
	"github.com/emiliopalmerini/churnboard/internal/logging"
	sharedmw "github.com/emiliopalmerini/churnboard/internal/shared/middleware"
	"github.com/emiliopalmerini/churnboard/internal/web/templates"
)

func (s *Server) handlePage(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, err := parsePeriod(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		report, ok := s.report(w, r)
		if !ok {
			return
		}

		data := templates.NewPageData(page, report, period, false)
		var c templ.Component
		if sharedmw.IsHTMX(r) {
			c, err = templates.Content(page, data)
		} else {
			c, err = templates.Page(page, data)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		templ.Handler(c).ServeHTTP(w, r)
	}
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleAPIExport serves one table: ?format=json|csv&period=week|month&partition=all|flow1|flow2|offer:<type>
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = export.FormatJSON
	}
	if format != export.FormatJSON && format != export.FormatCSV {
		http.Error(w, "format must be json or csv", http.StatusBadRequest)
		return
	}
	period, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, ok := s.report(w, r)
	if !ok {
		return
	}
	table, err := export.Build(report, export.Request{
		Table:       chi.URLParam(r, "table"),
		Granularity: period,
		Partition:   domain.Partition(q.Get("partition")),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	if format == export.FormatCSV {
		w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(table.Name+"-"+string(period)+".csv"))
	}
	if err := export.Write(w, table, format); err != nil {
		logging.Err(err).Str("table", table.Name).Msg("write export")
	}
}

// report fetches the cached report, answering 502 when the upstream fetch fails.
func (s *Server) report(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	refresh := r.URL.Query().Get("refresh") == "1"
	report, err := s.cache.Get(r.Context(), refresh)
	if err != nil {
		logging.Err(err).Str("path", r.URL.Path).Msg("generate report")
		http.Error(w, "failed to generate report: "+err.Error(), http.StatusBadGateway)
		return nil, false
	}
	return report, true
}

func parsePeriod(r *http.Request) (domain.Granularity, error) {
	p := r.URL.Query().Get("period")
	if p == "" {
		return domain.Weekly, nil
	}
	return domain.ParseGranularity(p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("encode json response")
	}
}
