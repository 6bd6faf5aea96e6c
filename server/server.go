// Package server exposes the trigger and status surface of the ingestion service over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/assocweb/ingest/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher

// Server represents HTTP server instance
type Server struct {
	cfg        Config
	runner     Runner
	dispatcher Dispatcher

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Runner runs registered scrapers and reports their state
type Runner interface {
	Has(name string) bool
	RunOne(ctx context.Context, name string) domain.ScrapeResult
	RunAll(ctx context.Context) map[string]domain.ScrapeResult
	Status() map[string]domain.ScraperStatus
	Submit(target string) (string, error)
	Task(id string) (domain.Task, bool)
}

// Dispatcher sends notifications about upcoming events
type Dispatcher interface {
	Dispatch(ctx context.Context) (domain.DispatchOutcome, error)
}

// Config holds server settings
type Config struct {
	Listen  string
	Timeout time.Duration // read/write timeout, synchronous runs must complete within it
	Version string
	Debug   bool
}

// New initializes a new server instance, dispatcher may be nil
func New(cfg Config, runner Runner, dispatcher Dispatcher) *Server {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}
	s := &Server{
		cfg:        cfg,
		runner:     runner,
		dispatcher: dispatcher,
		router:     routegroup.New(http.NewServeMux()),
	}

	// root not-found handler would answer 404 before the mux reports 405 for a known path
	s.router.DisableNotFoundHandler()
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.cfg.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.Timeout,
		WriteTimeout:      s.cfg.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler returns the routed handler with all middlewares
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("ingest", "assocweb", s.cfg.Version))
	s.router.Use(rest.Ping)

	if s.cfg.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // requests carry no payload
}

func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /scrapers", s.scrapersHandler)
		r.HandleFunc("POST /scrapers/{name}/run", s.runHandler)
		r.HandleFunc("GET /tasks/{id}", s.taskHandler)
		r.HandleFunc("POST /notifications/run", s.notifyHandler)
	})
}

func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
