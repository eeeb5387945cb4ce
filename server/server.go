// Package server provides the HTTP server for the Mergington High School
// activities API.
//
// The server exposes a small REST API for viewing extracurricular
// activities and managing signups, plus a static web UI.
//
// # Endpoints
//
//   - GET / - Redirects to the web UI
//   - GET /static/ - Web UI assets
//   - GET /health - Simple health check, returns "ok"
//   - GET /version - Build properties
//   - GET /activities - All activities with schedules and participants
//   - POST /activities/{name}/signup?email= - Sign a student up
//   - DELETE /activities/{name}/unregister?email= - Remove a student
//   - GET /metrics - Prometheus metrics
//
// # Example
//
//	srv, err := server.New(config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mergington/activities/buildinfo"
	"github.com/mergington/activities/logging"
	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
	"github.com/mergington/activities/server/config"
	"github.com/mergington/activities/server/cron"
	"github.com/mergington/activities/server/handlers"
	"github.com/mergington/activities/stats"
	"github.com/prometheus/client_golang/prometheus"
)

//go:embed static
var staticFiles embed.FS

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Server is the HTTP server for the activities API.
type Server struct {
	addr            string
	logger          *slog.Logger
	registry        *registry.Registry
	scrape          *metrics.ScrapeRegistry
	signups         metrics.CounterVec
	unregistrations metrics.CounterVec
	reporter        *stats.RosterReporter
	cronTrigger     *cron.CronTrigger
	httpServer      *http.Server
}

// Option configures a Server.
type Option func(*Server) error

// WithListenAddr overrides the listen address from the config.
func WithListenAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithLogger replaces the logger built from the config. Used in tests.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// New creates a new Server from the given configuration.
// It seeds the activity registry and initializes all dependencies.
func New(cfg *config.ServerConfig, opts ...Option) (*Server, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	seed, err := loadSeed(cfg.SeedPath)
	if err != nil {
		return nil, err
	}

	scrape, err := metrics.NewScrapeRegistry()
	if err != nil {
		return nil, fmt.Errorf("creating metrics registry: %w", err)
	}

	signups, err := scrape.NewCounterVec(prometheus.CounterOpts{
		Name: "signups_total",
		Help: "Total signup attempts by activity and result.",
	}, []string{"activity", "result"})
	if err != nil {
		return nil, err
	}

	unregistrations, err := scrape.NewCounterVec(prometheus.CounterOpts{
		Name: "unregistrations_total",
		Help: "Total unregistration attempts by activity and result.",
	}, []string{"activity", "result"})
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:            cfg.Listener.Addr,
		logger:          logger.Logger,
		registry:        registry.New(seed),
		scrape:          scrape,
		signups:         signups,
		unregistrations: unregistrations,
	}

	registries := []metrics.Registry{scrape}
	if cfg.Monitoring.VictoriaMetricsURL != "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("getting hostname: %w", err)
		}
		registries = append(registries, metrics.NewPushRegistry(metrics.PushConfig{
			URL:      cfg.Monitoring.VictoriaMetricsURL,
			Prefix:   cfg.Monitoring.MetricsPrefix,
			Job:      cfg.Monitoring.JobName,
			Instance: hostname,
		}))
	}

	s.reporter, err = stats.NewRosterReporter(s.logger, s.registry, registries...)
	if err != nil {
		return nil, fmt.Errorf("creating roster reporter: %w", err)
	}

	if cfg.Stats.Schedule != "" {
		trigger, err := cron.NewCronTrigger(cfg.Stats.Schedule, s.reporter, s.logger)
		if err != nil {
			return nil, fmt.Errorf("creating stats trigger: %w", err)
		}
		s.cronTrigger = trigger
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func loadSeed(path string) (map[string]registry.Activity, error) {
	if path == "" {
		return registry.DefaultSeed()
	}
	return registry.LoadSeed(path)
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Registry returns the activity registry.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Handler returns the server's root HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It performs a graceful shutdown when the context is done.
// If a stats schedule is configured, the cron trigger is started too.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	if s.cronTrigger != nil {
		s.logger.Info("starting stats trigger",
			"next_run", s.cronTrigger.NextRun(),
		)
		s.cronTrigger.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.addr, "build", buildinfo.Get().String())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	activitiesHandler := handlers.NewActivitiesHandler(s.registry)
	signupHandler := handlers.NewSignupHandler(s.logger, s.registry, s.signups)
	unregisterHandler := handlers.NewUnregisterHandler(s.logger, s.registry, s.unregistrations)

	// API endpoints
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.HandleFunc("GET /version", handlers.HandleVersion)
	mux.Handle("GET /activities", activitiesHandler)
	mux.Handle("POST /activities/{name}/signup", signupHandler)
	mux.Handle("DELETE /activities/{name}/unregister", unregisterHandler)
	mux.Handle("GET /metrics", s.scrape.Handler())

	// Static files (web UI)
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		s.logger.Error("failed to create static file system", "error", err)
		return
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})
}
