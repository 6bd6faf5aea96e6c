package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/assocweb/ingest/pkg/config"
	"github.com/assocweb/ingest/pkg/content"
	"github.com/assocweb/ingest/pkg/fetch"
	"github.com/assocweb/ingest/pkg/images"
	"github.com/assocweb/ingest/pkg/notify"
	"github.com/assocweb/ingest/pkg/repository"
	"github.com/assocweb/ingest/pkg/runner"
	"github.com/assocweb/ingest/pkg/scheduler"
	"github.com/assocweb/ingest/pkg/scraper"
	"github.com/assocweb/ingest/pkg/service"
	"github.com/assocweb/ingest/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"ingest.yml" description:"configuration file"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	RunOnce bool   `long:"run-once" description:"run all scrapers and currency once, then exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

const currencyScraper = "currency"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting ingest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// app holds wired components
type app struct {
	repos      *repository.Repositories
	runner     *runner.Orchestrator
	dispatcher *notify.Dispatcher
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	// secrets are known only after the config is loaded
	setupLog(opts.Debug, opts.NoColor, cfg.Notify.SMTP.Password, cfg.Images.S3.SecretKey)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if opts.RunOnce {
		return a.runOnce(ctx)
	}

	a.runner.Start(ctx)
	defer a.runner.Stop()

	params := scheduler.Params{
		Runner:       a.runner,
		Location:     cfg.Location(),
		DailyScrape:  config.Spec(cfg.Schedule.DailyScrape),
		WeeklyScrape: config.Spec(cfg.Schedule.WeeklyScrape),
		Notify:       config.Spec(cfg.Schedule.Notify),
		Currency:     config.Spec(cfg.Schedule.Currency),

		CurrencyScraper: currencyScraper,
	}
	var dispatcher server.Dispatcher
	if a.dispatcher != nil {
		params.Dispatcher = a.dispatcher
		dispatcher = a.dispatcher
	}
	sched, err := scheduler.NewScheduler(params)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Config{
		Listen:  cfg.Server.Listen,
		Timeout: cfg.Server.Timeout,
		Version: revision,
		Debug:   opts.Debug,
	}, a.runner, dispatcher)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// newApp wires store, transport, scrapers, orchestrator and dispatcher from configuration
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	store := service.NewStore(repos)

	imageStore, err := makeImageStore(ctx, cfg.Images)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	client := fetch.New(fetch.Config{
		DocumentTimeout: cfg.Fetch.DocumentTimeout,
		BinaryTimeout:   cfg.Fetch.BinaryTimeout,
		MaxRedirects:    cfg.Fetch.MaxRedirects,
		UserAgent:       cfg.Fetch.UserAgent,
	})
	loc := cfg.Location()

	orch := runner.New(runner.Config{QueueSize: cfg.Runner.QueueSize, TaskTTL: cfg.Runner.TaskTTL})
	for _, kind := range scraper.Kinds {
		sources := makeSources(cfg.Sources[kind.Name], client, loc)
		if kind.Name == scraper.KindNews.Name {
			gate := scraper.NewImageGate(client, imageStore, content.NewExtractor(client), "news")
			orch.Register(scraper.NewNewsScraper(store, sources, gate))
			continue
		}
		orch.Register(scraper.NewContentScraper(kind, store, sources))
	}
	orch.RegisterStandalone(scraper.NewCurrencyScraper(client, store, cfg.Currency.URL, cfg.Currency.Codes, loc))
	lgr.Printf("[INFO] registered scrapers %v", orch.Names())

	a := &app{repos: repos, runner: orch}
	if cfg.Notify.Enabled {
		a.dispatcher = notify.NewDispatcher(store, nil, notify.Config{
			DaysAhead: cfg.Notify.DaysAhead,
			Pacing:    cfg.Notify.Pacing,
			Location:  loc,
			SMTP:      cfg.Notify.SMTP,
			SiteName:  cfg.Notify.SiteName,
		})
	}
	return a, nil
}

// runOnce runs every content scraper, then the currency scraper, and reports failures
func (a *app) runOnce(ctx context.Context) error {
	results := a.runner.RunAll(ctx)
	results[currencyScraper] = a.runner.RunOne(ctx, currencyScraper)

	failed := 0
	for _, name := range a.runner.Names() {
		res := results[name]
		if !res.Success {
			failed++
			lgr.Printf("[WARN] %s failed: %s", name, res.Error)
			continue
		}
		lgr.Printf("[INFO] %s: %s", name, res.Message)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scrapers failed", failed, len(results))
	}
	return nil
}

func makeImageStore(ctx context.Context, cfg config.ImagesConfig) (scraper.ImageStore, error) {
	if cfg.Type == config.ImagesS3 {
		s3, err := images.NewS3Store(ctx, images.S3Config{
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
			Region:       cfg.S3.Region,
			BaseEndpoint: cfg.S3.Endpoint,
			Bucket:       cfg.S3.Bucket,
			KeyPrefix:    cfg.S3.Prefix,
			PublicURL:    cfg.S3.PublicURL,
			PathStyle:    cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 image store: %w", err)
		}
		return s3, nil
	}
	lgr.Printf("[INFO] local image store at %s", cfg.Dir)
	return images.NewLocalStore(cfg.Dir, cfg.BaseURL), nil
}

func makeSources(list []config.SourceConfig, client *fetch.Client, loc *time.Location) []scraper.Source {
	res := make([]scraper.Source, 0, len(list))
	for _, src := range list {
		if src.Type == config.SourceFeed {
			res = append(res, scraper.NewFeedSource(src.Name, src.URL, src.Keywords, client))
			continue
		}
		sel := src.Selectors
		res = append(res, scraper.NewHTMLSource(src.Name, src.URL, scraper.Selectors{
			Item:        sel.Item,
			Title:       sel.Title,
			Link:        sel.Link,
			Description: sel.Description,
			Image:       sel.Image,
			Date:        sel.Date,
			DateLayout:  sel.DateLayout,
			Location:    sel.Location,
			Category:    sel.Category,
		}, client, loc))
	}
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
