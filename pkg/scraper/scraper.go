// Package scraper turns external pages, feeds and the central-bank rate bulletin into store records.
// Content scrapers share one pipeline: collect candidates from independent sources, fall back to
// built-in seeds when nothing usable is found, then create every unseen title exactly once.
package scraper

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/content_store.go -pkg mocks -skip-ensure -fmt goimports . ContentStore
//go:generate moq -out mocks/indicator_store.go -pkg mocks -skip-ensure -fmt goimports . IndicatorStore
//go:generate moq -out mocks/image_store.go -pkg mocks -skip-ensure -fmt goimports . ImageStore
//go:generate moq -out mocks/article_extractor.go -pkg mocks -skip-ensure -fmt goimports . ArticleExtractor

import (
	"context"
	"errors"
	"time"

	"github.com/assocweb/ingest/pkg/content"
	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/fetch"
)

// ErrParse is returned when a source document can't be parsed into candidates
var ErrParse = errors.New("parse error")

// Fetcher retrieves documents and binaries
type Fetcher interface {
	FetchDocument(ctx context.Context, url string) (*fetch.Result, error)
	FetchBinary(ctx context.Context, url string) []byte
}

// ContentStore finds and creates content records
type ContentStore interface {
	FindByTitle(ctx context.Context, c domain.Collection, title string) (*domain.ContentRecord, error)
	Create(ctx context.Context, c domain.Collection, rec *domain.ContentRecord) error
}

// IndicatorStore upserts economic indicators
type IndicatorStore interface {
	UpsertIndicator(ctx context.Context, ind *domain.EconomicIndicator) (bool, error)
}

// ImageStore persists downloaded images and returns their public URL
type ImageStore interface {
	Save(ctx context.Context, domain, sourceURL string, data []byte) (string, error)
}

// ArticleExtractor pulls text and cover image from a detail page
type ArticleExtractor interface {
	Extract(ctx context.Context, pageURL string) (*content.Article, error)
}

// Scraper is a named unit producing records for one content domain
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) (domain.ScrapeResult, error)
}

// Candidate is an item extracted from a source before it becomes a record
type Candidate struct {
	Title       string
	Description string
	Content     string
	Link        string
	Image       string
	Category    string
	Location    string
	Source      string
	Date        time.Time
	EndDate     *time.Time
}

// Source is a single external origin of candidates, isolated from other sources of the same scraper
type Source interface {
	Name() string
	Extract(ctx context.Context) ([]Candidate, error)
}
