package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"liftdash/domain/survey"
	"liftdash/internal/errors"
	"liftdash/internal/filter"
	"liftdash/internal/report"
	"liftdash/ui/middleware"
	"liftdash/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

// pageTitle heads every page
const pageTitle = "Dashboard Analisis Kepuasan & Dampak Layanan Lift Twin Tower"

type dashboardPage struct {
	Title         string
	Dashboard     *report.Dashboard
	Charts        map[string]chartSnippet
	EchartsScript string
	Source        string
	RequestID     string
}

type noticePage struct {
	Title   string
	Heading string
	Message string
	Source  string
}

func selectionFromQuery(c *gin.Context) filter.Selection {
	return filter.NewSelection(c.Query("fakultas"), c.Query("prodi"))
}

// blockingMessage explains a load failure to the viewer
func blockingMessage(err error, source string) string {
	if errors.Is(err, errors.CodeNotFound) {
		return fmt.Sprintf("GAGAL MEMBACA DATA dari %s. Pastikan file data tersedia di lokasi yang dikonfigurasi.", source)
	}
	return fmt.Sprintf("Data survei dari %s tidak dapat dibaca: %v", source, err)
}

// loadOrUnavailable returns the table, or renders the blocking page and reports false
func (s *Server) loadOrUnavailable(c *gin.Context) (*survey.Table, bool) {
	table, err := s.tables.Load(c.Request.Context())
	if err != nil {
		s.renderTemplate(c, http.StatusServiceUnavailable, fragments.Unavailable, noticePage{
			Title:   pageTitle,
			Heading: "Data tidak tersedia",
			Message: blockingMessage(err, s.tables.Source()),
			Source:  s.tables.Source(),
		})
		return nil, false
	}
	return table, true
}

// loadOrUnavailableJSON is loadOrUnavailable for the JSON endpoints
func (s *Server) loadOrUnavailableJSON(c *gin.Context) (*survey.Table, bool) {
	table, err := s.tables.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": blockingMessage(err, s.tables.Source()),
			"code":  errors.GetCode(err),
		})
		return nil, false
	}
	return table, true
}

// handleDashboard renders the single dashboard page
func (s *Server) handleDashboard(c *gin.Context) {
	table, ok := s.loadOrUnavailable(c)
	if !ok {
		return
	}

	d := report.Build(table, selectionFromQuery(c))
	s.logger.Debug("[Dashboard] %s / %s: %d of %d rows",
		d.Options.Selection.Faculty, d.Options.Selection.Program, d.FilteredRows, d.TotalRows)

	s.renderTemplate(c, http.StatusOK, fragments.Dashboard, dashboardPage{
		Title:         pageTitle,
		Dashboard:     d,
		Charts:        buildSnippets(d),
		EchartsScript: echartsScript,
		Source:        s.tables.Source(),
		RequestID:     middleware.GetRequestID(c),
	})
}

// handleChart renders one chart as a standalone page
func (s *Server) handleChart(c *gin.Context) {
	name := c.Param("name")
	def, found := findChart(name)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("unknown chart %q", name),
			"code":  errors.CodeInvalidInput,
		})
		return
	}

	table, ok := s.loadOrUnavailable(c)
	if !ok {
		return
	}

	d := report.Build(table, selectionFromQuery(c))
	if d.NoData {
		s.renderTemplate(c, http.StatusOK, fragments.ChartNotice, noticePage{
			Title: def.Title, Heading: def.Title, Message: report.NoDataMessage, Source: s.tables.Source(),
		})
		return
	}

	chart, drawable := def.build(d)
	if !drawable {
		s.renderTemplate(c, http.StatusOK, fragments.ChartNotice, noticePage{
			Title:   def.Title,
			Heading: def.Title,
			Message: "Kolom numerik kurang dari dua, matriks korelasi tidak dapat dibuat.",
			Source:  s.tables.Source(),
		})
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		s.logger.Error("[Charts] Rendering %s failed: %v", name, err)
		appErr := errors.InternalError("chart rendering failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleDashboardJSON returns the dashboard model for the current filters
func (s *Server) handleDashboardJSON(c *gin.Context) {
	table, ok := s.loadOrUnavailableJSON(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Build(table, selectionFromQuery(c)))
}

// handleOptionsJSON returns the two select-box option lists
func (s *Server) handleOptionsJSON(c *gin.Context) {
	table, ok := s.loadOrUnavailableJSON(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, filter.Options(table, selectionFromQuery(c)))
}

// handleHealth reports whether the survey table is loaded
func (s *Server) handleHealth(c *gin.Context) {
	table, ok := s.loadOrUnavailableJSON(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"rows":      table.Len(),
		"source":    s.tables.Source(),
		"loaded_at": s.tables.LoadedAt().Format(time.RFC3339),
	})
}
