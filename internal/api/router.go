// Package api serves the dashboard model as plain JSON over chi, for
// consumers that do not want the rendered page.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"liftdash/domain/survey"
	"liftdash/internal"
	"liftdash/internal/analysis"
	"liftdash/internal/errors"
	"liftdash/internal/filter"
	"liftdash/internal/report"
	"liftdash/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler holds the dependencies of the JSON endpoints
type Handler struct {
	tables ports.TableProvider
	logger *internal.Logger
}

// ColumnCounts is the body of GET /api/counts/{column}
type ColumnCounts struct {
	Column    string          `json:"column"`
	Selection filter.Selection `json:"selection"`
	Rows      int             `json:"rows"`
	Mode      string          `json:"mode"`
	Counts    analysis.Counts `json:"counts"`
}

// NewRouter builds the chi router for the JSON API
func NewRouter(tables ports.TableProvider, logger *internal.Logger) http.Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	h := &Handler{tables: tables, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.handleDashboard)
		r.Get("/options", h.handleOptions)
		r.Get("/counts/{column}", h.handleCounts)
		r.Get("/suggestions", h.handleSuggestions)
		r.Get("/correlation", h.handleCorrelation)
	})
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		reqID := middleware.GetReqID(r.Context())
		switch {
		case status >= 500:
			h.logger.Error("[API] %s %s %d %v id=%s", r.Method, r.URL.Path, status, time.Since(start), reqID)
		case status >= 400:
			h.logger.Warn("[API] %s %s %d %v id=%s", r.Method, r.URL.Path, status, time.Since(start), reqID)
		default:
			h.logger.Debug("[API] %s %s %d %v id=%s", r.Method, r.URL.Path, status, time.Since(start), reqID)
		}
	})
}

func selectionFrom(r *http.Request) filter.Selection {
	q := r.URL.Query()
	return filter.NewSelection(q.Get("fakultas"), q.Get("prodi"))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

// load returns the table, or writes a 503 and reports false
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*survey.Table, bool) {
	table, err := h.tables.Load(r.Context())
	if err != nil {
		h.logger.Warn("[API] Survey source %s unavailable: %v", h.tables.Source(), err)
		writeError(w, http.StatusServiceUnavailable, err)
		return nil, false
	}
	return table, true
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"rows":      table.Len(),
		"source":    h.tables.Source(),
		"loaded_at": h.tables.LoadedAt().Format(time.RFC3339),
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Build(table, selectionFrom(r)))
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, filter.Options(table, selectionFrom(r)))
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "column")
	col, known := survey.LookupColumn(name)
	if !known || col == survey.ColSuggestion {
		writeError(w, http.StatusBadRequest, errors.InvalidInput(fmt.Sprintf("unknown categorical column %q", name)))
		return
	}

	table, ok := h.load(w, r)
	if !ok {
		return
	}
	opts := filter.Options(table, selectionFrom(r))
	view := filter.ApplySelection(table, opts.Selection)

	mode, err := analysis.Mode(view, col)
	if err != nil {
		mode = report.Placeholder
	}
	writeJSON(w, http.StatusOK, ColumnCounts{
		Column:    name,
		Selection: opts.Selection,
		Rows:      view.Len(),
		Mode:      mode,
		Counts:    analysis.ValueCounts(view, col),
	})
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w, r)
	if !ok {
		return
	}
	opts := filter.Options(table, selectionFrom(r))
	suggestions := analysis.Suggestions(filter.ApplySelection(table, opts.Selection))
	if suggestions == nil {
		suggestions = []analysis.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *Handler) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	table, ok := h.load(w, r)
	if !ok {
		return
	}
	opts := filter.Options(table, selectionFrom(r))
	corr, ok := analysis.CorrelationMatrix(filter.ApplySelection(table, opts.Selection))
	if !ok {
		writeError(w, http.StatusUnprocessableEntity,
			errors.ValidationError("correlation needs at least two numeric columns and one row"))
		return
	}
	writeJSON(w, http.StatusOK, report.NewCorrelationTable(corr))
}
