// Package web serves the dashboard pages, the report API and the metrics endpoint.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/emiliopalmerini/churnboard/internal/adapters/prometheus"
	"github.com/emiliopalmerini/churnboard/internal/logging"
	"github.com/emiliopalmerini/churnboard/internal/ports"
	sharedmw "github.com/emiliopalmerini/churnboard/internal/shared/middleware"
	"github.com/emiliopalmerini/churnboard/internal/web/templates"
)

const DefaultCacheTTL = 5 * time.Minute

// Config holds server-specific configuration.
type Config struct {
	Port     int
	CacheTTL time.Duration
}

type Server struct {
	router chi.Router
	port   int
	cache  *reportCache
}

func NewServer(cfg Config, gen ports.ReportGenerator) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	s := &Server{
		router: chi.NewRouter(),
		port:   cfg.Port,
		cache:  newReportCache(gen, cfg.CacheTTL),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(sharedmw.RequestLogger(logging.With().Str("component", "web").Logger()))
	r.Use(middleware.Recoverer)
	r.Use(sharedmw.HTMX)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", prometheus.Handler())

	// Pages
	r.Get("/", s.handlePage(templates.PageOverview))
	r.Get("/"+templates.PageRevenue, s.handlePage(templates.PageRevenue))
	r.Get("/"+templates.PageFlows, s.handlePage(templates.PageFlows))

	// API
	r.Get("/api/report", s.handleAPIReport)
	r.Get("/api/export/{table}", s.handleAPIExport)
}

// ServeHTTP lets the server be mounted or tested without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Info().Int("port", s.port).Msgf("starting server at http://localhost:%d", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Err(err).Msg("server shutdown")
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
