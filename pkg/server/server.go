// Package server is flowboard's HTTP editing shell.
//
// Each editing session lives in memory on the server and is addressed by a
// UUID. Clients post discrete input events and receive the event result
// together with the updated diagram description, or fetch rendered
// artifacts of the current state:
//
//	POST   /sessions                      create (optional seed snapshot body)
//	GET    /sessions/{id}                 snapshot
//	DELETE /sessions/{id}                 discard
//	POST   /sessions/{id}/events          apply one event
//	GET    /sessions/{id}/diagram.{fmt}   svg, json, png, pdf or dot
//	GET    /catalog                       node types
//	GET    /health
//	GET    /metrics                       Prometheus
//
// Access to one session is serialized behind a per-session mutex. Nothing
// is persisted: sessions idle for longer than the configured TTL are
// dropped.
package server

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/flowboard/pkg/catalog"
	"github.com/matzehuels/flowboard/pkg/pipeline"
)

// Config configures a Server.
type Config struct {
	// Catalog is the node type table for new sessions. Nil means the
	// built-in catalog.
	Catalog *catalog.Catalog
	// Runner renders artifacts. Nil means an uncached runner.
	Runner *pipeline.Runner
	Logger *log.Logger
	// AllowedOrigins for CORS. Empty means any origin.
	AllowedOrigins []string
	// Theme is the default canvas theme for diagrams.
	Theme string
	// SessionTTL is the idle lifetime of a session.
	SessionTTL time.Duration
}

// Server serves editing sessions over HTTP.
type Server struct {
	catalog  *catalog.Catalog
	runner   *pipeline.Runner
	logger   *log.Logger
	theme    string
	origins  []string
	sessions *store
	validate *validator.Validate
}

// New creates a server.
func New(cfg Config) *Server {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Theme == "" {
		cfg.Theme = pipeline.DefaultTheme
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &Server{
		catalog:  cfg.Catalog,
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		theme:    cfg.Theme,
		origins:  cfg.AllowedOrigins,
		sessions: newStore(cfg.SessionTTL),
		validate: newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/events", s.handleEvent)
			r.Get("/diagram.{format}", s.handleDiagram)
		})
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// Expired sessions are swept once a minute.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.sessions.cleanup(); n > 0 {
				s.logger.Debug("expired sessions", "count", n, "live", s.sessions.len())
			}
		}
	}
}
