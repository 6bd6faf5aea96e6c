// Package runner holds named scrapers, runs them one by one or all in order, and tracks
// their status. Runs are isolated: a failing or panicking scraper only marks its own entry.
package runner

//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/assocweb/ingest/pkg/domain"
)

// TargetAll runs every non-standalone scraper
const TargetAll = "all"

var (
	// ErrUnknownScraper is returned for names that were never registered
	ErrUnknownScraper = errors.New("unknown scraper")
	// ErrAlreadyRunning is returned when a scraper is started while its previous run is in flight
	ErrAlreadyRunning = errors.New("already running")
	// ErrQueueFull is returned by Submit when the task queue can't take more tasks
	ErrQueueFull = errors.New("task queue is full")
	// ErrCancelled is the result of tasks still queued when the worker stops
	ErrCancelled = errors.New("task cancelled")
)

// Scraper is a named unit of ingestion
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) (domain.ScrapeResult, error)
}

// Config holds orchestrator configuration
type Config struct {
	QueueSize int           // pending async tasks, default 16
	TaskTTL   time.Duration // how long task records are kept, default 1h
}

type registered struct {
	scraper    Scraper
	standalone bool
}

// Orchestrator is the registry and runner of scrapers
type Orchestrator struct {
	mu       sync.RWMutex
	scrapers map[string]registered
	order    []string

	status *statusTable
	tasks  *taskQueue
	now    func() time.Time
}

// New makes an empty orchestrator
func New(cfg Config) *Orchestrator {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.TaskTTL <= 0 {
		cfg.TaskTTL = time.Hour
	}
	return &Orchestrator{
		scrapers: map[string]registered{},
		status:   newStatusTable(),
		tasks:    newTaskQueue(cfg.QueueSize, cfg.TaskTTL),
		now:      time.Now,
	}
}

// Register adds a scraper included in RunAll, in registration order
func (o *Orchestrator) Register(s Scraper) {
	o.register(s, false)
}

// RegisterStandalone adds a scraper that runs only by name, e.g. on its own schedule
func (o *Orchestrator) RegisterStandalone(s Scraper) {
	o.register(s, true)
}

func (o *Orchestrator) register(s Scraper, standalone bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	name := s.Name()
	if _, ok := o.scrapers[name]; ok {
		lgr.Printf("[WARN] scraper %s registered twice, replacing", name)
	} else {
		o.order = append(o.order, name)
	}
	o.scrapers[name] = registered{scraper: s, standalone: standalone}
	o.status.add(name)
}

// Has reports whether name is a registered scraper
func (o *Orchestrator) Has(name string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.scrapers[name]
	return ok
}

// Names returns registered scraper names in registration order
func (o *Orchestrator) Names() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	res := make([]string, len(o.order))
	copy(res, o.order)
	return res
}

// RunOne runs a scraper by name and records its outcome.
// Errors and panics of the scraper become a failed result and an error status.
func (o *Orchestrator) RunOne(ctx context.Context, name string) domain.ScrapeResult {
	o.mu.RLock()
	reg, ok := o.scrapers[name]
	o.mu.RUnlock()
	if !ok {
		return domain.FailedResult(fmt.Errorf("%w: %s", ErrUnknownScraper, name))
	}

	if err := o.status.begin(name, o.now()); err != nil {
		lgr.Printf("[WARN] scraper %s not started, %v", name, err)
		return domain.FailedResult(err)
	}

	lgr.Printf("[INFO] scraper %s started", name)
	st := time.Now()
	res := o.invoke(ctx, reg.scraper)
	o.status.finish(name, res)

	if res.Success {
		lgr.Printf("[INFO] scraper %s done in %v, %d new, %s", name, time.Since(st).Truncate(time.Millisecond), res.Count, res.Message)
	} else {
		lgr.Printf("[WARN] scraper %s failed in %v, %s", name, time.Since(st).Truncate(time.Millisecond), res.Error)
	}
	return res
}

// RunAll runs every non-standalone scraper sequentially in registration order
func (o *Orchestrator) RunAll(ctx context.Context) map[string]domain.ScrapeResult {
	o.mu.RLock()
	names := make([]string, 0, len(o.order))
	for _, name := range o.order {
		if !o.scrapers[name].standalone {
			names = append(names, name)
		}
	}
	o.mu.RUnlock()

	results := make(map[string]domain.ScrapeResult, len(names))
	failed := 0
	for _, name := range names {
		res := o.RunOne(ctx, name)
		if !res.Success {
			failed++
		}
		results[name] = res
	}
	lgr.Printf("[INFO] run all completed, %d scrapers, %d failed", len(names), failed)
	return results
}

// Status returns a copy of the status table
func (o *Orchestrator) Status() map[string]domain.ScraperStatus {
	return o.status.snapshot()
}

// StatusOf returns the status of a single scraper
func (o *Orchestrator) StatusOf(name string) (domain.ScraperStatus, bool) {
	return o.status.get(name)
}

func (o *Orchestrator) invoke(ctx context.Context, s Scraper) (res domain.ScrapeResult) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] scraper %s panicked, %v", s.Name(), r)
			res = domain.FailedResult(fmt.Errorf("panic: %v", r))
		}
	}()

	r, err := s.Scrape(ctx)
	if err != nil {
		return domain.FailedResult(err)
	}
	if !r.Success && r.Error == "" {
		r.Error = r.Message
		if r.Error == "" {
			r.Error = "failed"
		}
	}
	return r
}
