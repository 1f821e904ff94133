package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"liftdash/internal"
	"liftdash/ports"
	"liftdash/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Server is the dashboard web server
type Server struct {
	router    *gin.Engine
	tables    ports.TableProvider
	templates *template.Template
	logger    *internal.Logger
}

// NewServer parses the embedded templates and wires routes over the table provider
func NewServer(tables ports.TableProvider, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router: gin.New(),
		tables: tables,
		logger: logger,
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"pct":      func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"num":      func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"markdown": renderMarkdown,
		"add":      func(a, b int) int { return a + b },
		"corr": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%.2f", *v)
		},
		"corrClass": correlationClass,
	}

	patterns := make([]string, len(fragments.Pages))
	for i, page := range fragments.Pages {
		patterns[i] = "templates/" + page
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, patterns...)
	if err != nil {
		s.logger.Error("[TemplateInit] Failed to parse templates: %v", err)
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = tmpl
	s.logger.Debug("[TemplateInit] Parsed %d page templates", len(fragments.Pages))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleDashboard)
	s.router.GET("/charts/:name", s.handleChart)

	api := s.router.Group("/api")
	api.GET("/dashboard", s.handleDashboardJSON)
	api.GET("/options", s.handleOptionsJSON)

	s.router.GET("/healthz", s.handleHealth)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("[Server] Dashboard listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("[Server] Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// correlationClass buckets a coefficient for the table cell colour
func correlationClass(v *float64) string {
	if v == nil {
		return "corr-na"
	}
	switch {
	case *v >= 0.5:
		return "corr-strong-pos"
	case *v > 0.1:
		return "corr-pos"
	case *v <= -0.5:
		return "corr-strong-neg"
	case *v < -0.1:
		return "corr-neg"
	default:
		return "corr-none"
	}
}
