// Package config loads the YAML service configuration, applies defaults and validates it
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/assocweb/ingest/pkg/notify"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// ScheduleOff disables a scheduled job
const ScheduleOff = "off"

// source types
const (
	SourceHTML = "html"
	SourceFeed = "feed"
)

// image store types
const (
	ImagesLocal = "local"
	ImagesS3    = "s3"
)

// content scraper names a source list may be keyed by
var scraperNames = []string{"news", "legislation", "incentives", "reports", "training", "fairs", "projects"}

// Config holds the application configuration
type Config struct {
	Server   ServerConfig              `yaml:"server" json:"server" jsonschema:"description=HTTP trigger and status server"`
	Database DatabaseConfig            `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Fetch    FetchConfig               `yaml:"fetch" json:"fetch" jsonschema:"description=HTTP transport used by scrapers"`
	Sources  map[string][]SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Sources per content scraper (news legislation incentives reports training fairs projects)"`
	Currency CurrencyConfig            `yaml:"currency" json:"currency" jsonschema:"description=Exchange rate scraper"`
	Schedule ScheduleConfig            `yaml:"schedule" json:"schedule" jsonschema:"description=Cron schedules"`
	Runner   RunnerConfig              `yaml:"runner" json:"runner" jsonschema:"description=Async run queue"`
	Notify   NotifyConfig              `yaml:"notify" json:"notify" jsonschema:"description=Event notifications"`
	Images   ImagesConfig              `yaml:"images" json:"images" jsonschema:"description=Storage of downloaded news images"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"type=string,default=5m,description=HTTP server timeout covering synchronous runs"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:ingest.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// FetchConfig holds transport settings
type FetchConfig struct {
	DocumentTimeout time.Duration `yaml:"document_timeout" json:"document_timeout" jsonschema:"type=string,default=30s,description=Timeout for pages and feeds"`
	BinaryTimeout   time.Duration `yaml:"binary_timeout" json:"binary_timeout" jsonschema:"type=string,default=15s,description=Timeout for images"`
	MaxRedirects    int           `yaml:"max_redirects" json:"max_redirects" jsonschema:"default=5,minimum=1,description=Redirect hops before a fetch fails"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent of a desktop browser if empty"`
}

// SourceConfig describes one list page or feed of a content scraper
type SourceConfig struct {
	Name      string          `yaml:"name" json:"name" jsonschema:"required,description=Source name used in logs and records"`
	Type      string          `yaml:"type" json:"type" jsonschema:"enum=html,enum=feed,default=html,description=Source type"`
	URL       string          `yaml:"url" json:"url" jsonschema:"required,description=List page or feed URL"`
	Keywords  []string        `yaml:"keywords" json:"keywords,omitempty" jsonschema:"description=Feed items must match one of them if set"`
	Selectors SelectorsConfig `yaml:"selectors" json:"selectors" jsonschema:"description=Selectors for html sources"`
}

// SelectorsConfig locates candidate fields on an html list page
type SelectorsConfig struct {
	Item        string `yaml:"item" json:"item" jsonschema:"description=Selector of one item"`
	Title       string `yaml:"title" json:"title,omitempty" jsonschema:"description=Title selector or item text if empty"`
	Link        string `yaml:"link" json:"link,omitempty" jsonschema:"description=Detail link selector or first anchor if empty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Image       string `yaml:"image" json:"image,omitempty"`
	Date        string `yaml:"date" json:"date,omitempty" jsonschema:"description=Date or date range"`
	DateLayout  string `yaml:"date_layout" json:"date_layout,omitempty" jsonschema:"description=Go time layout tried before the built-in ones"`
	Location    string `yaml:"location" json:"location,omitempty"`
	Category    string `yaml:"category" json:"category,omitempty"`
}

// CurrencyConfig holds exchange rate scraper settings
type CurrencyConfig struct {
	URL   string   `yaml:"url" json:"url" jsonschema:"description=Central bank daily XML bulletin"`
	Codes []string `yaml:"codes" json:"codes" jsonschema:"description=Currency codes stored,default=USD"`
}

// ScheduleConfig holds cron specs, "off" disables a job
type ScheduleConfig struct {
	Timezone     string `yaml:"timezone" json:"timezone" jsonschema:"default=Europe/Istanbul,description=Time zone of schedules and notification window"`
	DailyScrape  string `yaml:"daily_scrape" json:"daily_scrape" jsonschema:"default=0 3 * * *"`
	WeeklyScrape string `yaml:"weekly_scrape" json:"weekly_scrape" jsonschema:"default=0 4 * * 1"`
	Notify       string `yaml:"notify" json:"notify" jsonschema:"default=0 9 * * *"`
	Currency     string `yaml:"currency" json:"currency" jsonschema:"default=30 16 * * *"`
}

// RunnerConfig holds async run queue settings
type RunnerConfig struct {
	QueueSize int           `yaml:"queue_size" json:"queue_size" jsonschema:"default=16,description=Pending async runs"`
	TaskTTL   time.Duration `yaml:"task_ttl" json:"task_ttl" jsonschema:"type=string,default=1h,description=How long task records are kept"`
}

// NotifyConfig holds dispatcher settings, SMTP values are overridden by stored settings
type NotifyConfig struct {
	Enabled   bool              `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable event notifications"`
	DaysAhead int               `yaml:"days_ahead" json:"days_ahead" jsonschema:"default=7,minimum=1"`
	Pacing    time.Duration     `yaml:"pacing" json:"pacing" jsonschema:"type=string,default=2s,description=Pause between sends"`
	SiteName  string            `yaml:"site_name" json:"site_name"`
	SMTP      notify.SMTPConfig `yaml:"smtp" json:"smtp" jsonschema:"description=Fallback SMTP settings"`
}

// ImagesConfig selects where news images are stored
type ImagesConfig struct {
	Type    string   `yaml:"type" json:"type" jsonschema:"enum=local,enum=s3,default=local"`
	Dir     string   `yaml:"dir" json:"dir" jsonschema:"default=var/images,description=Root directory of the local store"`
	BaseURL string   `yaml:"base_url" json:"base_url" jsonschema:"default=/images,description=Public prefix of local images"`
	S3      S3Config `yaml:"s3" json:"s3"`
}

// S3Config holds bucket settings of the s3 image store
type S3Config struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint" jsonschema:"description=Custom endpoint for S3 compatible storage"`
	Region    string `yaml:"region" json:"region" jsonschema:"default=us-east-1"`
	Bucket    string `yaml:"bucket" json:"bucket"`
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"secret_key"`
	Prefix    string `yaml:"prefix" json:"prefix" jsonschema:"description=Key prefix"`
	PublicURL string `yaml:"public_url" json:"public_url" jsonschema:"description=Public URL of the bucket"`
	PathStyle bool   `yaml:"path_style" json:"path_style"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML with environment variables expanded, then applies defaults and validates
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Config{Notify: NotifyConfig{Enabled: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 5 * time.Minute
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:ingest.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Fetch.DocumentTimeout == 0 {
		cfg.Fetch.DocumentTimeout = 30 * time.Second
	}
	if cfg.Fetch.BinaryTimeout == 0 {
		cfg.Fetch.BinaryTimeout = 15 * time.Second
	}
	if cfg.Fetch.MaxRedirects == 0 {
		cfg.Fetch.MaxRedirects = 5
	}

	for name, sources := range cfg.Sources {
		for i := range sources {
			if sources[i].Type == "" {
				sources[i].Type = SourceHTML
			}
		}
		cfg.Sources[name] = sources
	}

	if cfg.Currency.URL == "" {
		cfg.Currency.URL = "https://www.tcmb.gov.tr/kurlar/today.xml"
	}
	if len(cfg.Currency.Codes) == 0 {
		cfg.Currency.Codes = []string{"USD", "EUR", "GBP"}
	}
	for i, c := range cfg.Currency.Codes {
		cfg.Currency.Codes[i] = strings.ToUpper(strings.TrimSpace(c))
	}

	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Europe/Istanbul"
	}
	if cfg.Schedule.DailyScrape == "" {
		cfg.Schedule.DailyScrape = "0 3 * * *"
	}
	if cfg.Schedule.WeeklyScrape == "" {
		cfg.Schedule.WeeklyScrape = "0 4 * * 1"
	}
	if cfg.Schedule.Notify == "" {
		cfg.Schedule.Notify = "0 9 * * *"
	}
	if cfg.Schedule.Currency == "" {
		cfg.Schedule.Currency = "30 16 * * *"
	}

	if cfg.Runner.QueueSize == 0 {
		cfg.Runner.QueueSize = 16
	}
	if cfg.Runner.TaskTTL == 0 {
		cfg.Runner.TaskTTL = time.Hour
	}

	if cfg.Notify.DaysAhead == 0 {
		cfg.Notify.DaysAhead = 7
	}
	if cfg.Notify.Pacing == 0 {
		cfg.Notify.Pacing = 2 * time.Second
	}
	if cfg.Notify.SMTP.Port == 0 {
		cfg.Notify.SMTP.Port = 587
	}
	if cfg.Notify.SMTP.Timeout == 0 {
		cfg.Notify.SMTP.Timeout = 30 * time.Second
	}

	if cfg.Images.Type == "" {
		cfg.Images.Type = ImagesLocal
	}
	if cfg.Images.Dir == "" {
		cfg.Images.Dir = "var/images"
	}
	if cfg.Images.BaseURL == "" {
		cfg.Images.BaseURL = "/images"
	}
	if cfg.Images.S3.Region == "" {
		cfg.Images.S3.Region = "us-east-1"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxRedirects < 1 {
		return errors.New("fetch.max_redirects must be at least 1")
	}

	for name, sources := range cfg.Sources {
		if !known(name) {
			return fmt.Errorf("sources: unknown scraper %q", name)
		}
		for i, src := range sources {
			if src.Name == "" || src.URL == "" {
				return fmt.Errorf("sources.%s[%d]: name and url are required", name, i)
			}
			switch src.Type {
			case SourceHTML:
				if src.Selectors.Item == "" {
					return fmt.Errorf("sources.%s[%d]: selectors.item is required for html source", name, i)
				}
			case SourceFeed:
			default:
				return fmt.Errorf("sources.%s[%d]: unknown type %q", name, i, src.Type)
			}
		}
	}

	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	specs := map[string]string{
		"daily_scrape": cfg.Schedule.DailyScrape, "weekly_scrape": cfg.Schedule.WeeklyScrape,
		"notify": cfg.Schedule.Notify, "currency": cfg.Schedule.Currency,
	}
	for name, spec := range specs {
		if spec == ScheduleOff {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			return fmt.Errorf("schedule.%s: %w", name, err)
		}
	}

	if cfg.Notify.DaysAhead < 1 {
		return errors.New("notify.days_ahead must be at least 1")
	}
	if cfg.Notify.Pacing < 0 {
		return errors.New("notify.pacing must be non-negative")
	}

	switch cfg.Images.Type {
	case ImagesLocal:
	case ImagesS3:
		if cfg.Images.S3.Bucket == "" {
			return errors.New("images.s3.bucket is required for s3 store")
		}
	default:
		return fmt.Errorf("images.type: unknown store %q", cfg.Images.Type)
	}

	return nil
}

func known(name string) bool {
	for _, n := range scraperNames {
		if n == name {
			return true
		}
	}
	return false
}

// Spec returns the cron spec of a schedule value, empty when the job is off
func Spec(v string) string {
	if v == ScheduleOff {
		return ""
	}
	return v
}

// Location returns the configured schedule time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
