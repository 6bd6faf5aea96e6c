// Package scheduler fires recurring scrape, currency and notification jobs on cron schedules
package scheduler

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/assocweb/ingest/pkg/domain"
)

// Runner runs registered scrapers
type Runner interface {
	RunAll(ctx context.Context) map[string]domain.ScrapeResult
	RunOne(ctx context.Context, name string) domain.ScrapeResult
}

// Dispatcher sends notifications about upcoming events
type Dispatcher interface {
	Dispatch(ctx context.Context) (domain.DispatchOutcome, error)
}

// job names
const (
	JobDailyScrape  = "daily-scrape"
	JobWeeklyScrape = "weekly-scrape"
	JobNotify       = "notify"
	JobCurrency     = "currency"
)

// Params holds scheduler dependencies and schedules.
// A schedule is a standard 5-field cron spec, empty disables the job.
type Params struct {
	Runner          Runner
	Dispatcher      Dispatcher
	Location        *time.Location
	DailyScrape     string
	WeeklyScrape    string
	Notify          string
	Currency        string
	CurrencyScraper string // name of the standalone scraper run by the currency job
}

// Job describes a scheduled job
type Job struct {
	Name string    `json:"name"`
	Spec string    `json:"spec"`
	Next time.Time `json:"next"`
}

// Scheduler manages cron jobs
type Scheduler struct {
	cron       *cron.Cron
	runner     Runner
	dispatcher Dispatcher
	entries    map[string]cron.EntryID
	specs      map[string]string
	ctx        context.Context
	cancel     context.CancelFunc
	curName    string
}

// cronLogger routes cron errors, including recovered job panics, to lgr
type cronLogger struct{}

func (cronLogger) Printf(format string, args ...any) {
	lgr.Printf("[WARN] cron: "+format, args...)
}

// NewScheduler creates a scheduler with all configured jobs, fails on an invalid spec
func NewScheduler(params Params) (*Scheduler, error) {
	if params.Location == nil {
		params.Location = time.Local
	}
	if params.CurrencyScraper == "" {
		params.CurrencyScraper = "currency"
	}

	logger := cron.PrintfLogger(cronLogger{})
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(params.Location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		runner:     params.Runner,
		dispatcher: params.Dispatcher,
		entries:    map[string]cron.EntryID{},
		specs:      map[string]string{},
		ctx:        context.Background(),
		curName:    params.CurrencyScraper,
	}

	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{JobDailyScrape, params.DailyScrape, func() { s.scrapeAll(JobDailyScrape) }},
		{JobWeeklyScrape, params.WeeklyScrape, func() { s.scrapeAll(JobWeeklyScrape) }},
		{JobNotify, params.Notify, s.notify},
		{JobCurrency, params.Currency, s.currency},
	}
	for _, j := range jobs {
		if j.spec == "" {
			lgr.Printf("[INFO] job %s disabled", j.name)
			continue
		}
		if j.name == JobNotify && s.dispatcher == nil {
			lgr.Printf("[WARN] job %s has no dispatcher, disabled", j.name)
			continue
		}
		id, err := s.cron.AddFunc(j.spec, j.fn)
		if err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", j.name, j.spec, err)
		}
		s.entries[j.name] = id
		s.specs[j.name] = j.spec
	}
	return s, nil
}

// Start begins firing jobs, ctx is passed to every job run
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.cron.Start()
	for _, j := range s.Jobs() {
		lgr.Printf("[INFO] job %s scheduled %q, next run %s", j.Name, j.Spec, j.Next.Format(time.RFC3339))
	}
}

// Stop stops firing jobs and waits for running ones to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	<-s.cron.Stop().Done()
	if s.cancel != nil {
		s.cancel()
	}
	lgr.Printf("[INFO] scheduler stopped")
}

// Jobs returns scheduled jobs sorted by name. Next is zero until the scheduler is started.
func (s *Scheduler) Jobs() []Job {
	res := make([]Job, 0, len(s.entries))
	for name, id := range s.entries {
		res = append(res, Job{Name: name, Spec: s.specs[name], Next: s.cron.Entry(id).Next})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

func (s *Scheduler) scrapeAll(job string) {
	lgr.Printf("[INFO] job %s started", job)
	results := s.runner.RunAll(s.ctx)
	created, failed := 0, 0
	for name, res := range results {
		if !res.Success {
			failed++
			lgr.Printf("[WARN] job %s, scraper %s failed: %s", job, name, res.Error)
			continue
		}
		created += res.Count
	}
	lgr.Printf("[INFO] job %s completed, %d scrapers, %d new records, %d failed", job, len(results), created, failed)
}

func (s *Scheduler) currency() {
	res := s.runner.RunOne(s.ctx, s.curName)
	if !res.Success {
		lgr.Printf("[WARN] job %s failed: %s", JobCurrency, res.Error)
		return
	}
	lgr.Printf("[INFO] job %s completed, %s", JobCurrency, res.Message)
}

func (s *Scheduler) notify() {
	outcome, err := s.dispatcher.Dispatch(s.ctx)
	if err != nil {
		lgr.Printf("[ERROR] job %s failed: %v", JobNotify, err)
		return
	}
	lgr.Printf("[INFO] job %s completed, %d sent, %d failed", JobNotify, outcome.Sent, outcome.Failed)
}
