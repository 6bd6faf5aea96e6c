package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/repository"
	"github.com/assocweb/ingest/pkg/slug"
)

// Enricher completes a new record before it is stored.
// Returning an error discards the candidate.
type Enricher interface {
	Enrich(ctx context.Context, cand Candidate, rec *domain.ContentRecord) error
}

// Pipeline is the common ingestion flow of content scrapers
type Pipeline struct {
	Name       string
	Collection domain.Collection
	Category   string // default category for records without one
	Sources    []Source
	Seeds      func(now time.Time) []Candidate
	Store      ContentStore
	Enricher   Enricher
	Now        func() time.Time
}

// Ingest collects candidates and creates records for unseen titles.
// Per-item problems are logged and counted as skipped, the error is returned only
// when every source failed and there is nothing to fall back to.
func (p *Pipeline) Ingest(ctx context.Context) (domain.ScrapeResult, error) {
	now := p.now()
	candidates, srcErr := p.collect(ctx)

	seeded := false
	if len(candidates) == 0 {
		if p.Seeds == nil {
			if srcErr != nil {
				return domain.ScrapeResult{}, srcErr
			}
			return domain.ScrapeResult{Success: true, Message: "no items found"}, nil
		}
		lgr.Printf("[WARN] %s: no usable items from sources, using built-in seed data", p.Name)
		candidates = p.Seeds(now)
		seeded = true
	}

	created, skipped := 0, 0
	for _, cand := range candidates {
		ok, err := p.ingestOne(ctx, cand, now)
		if err != nil {
			lgr.Printf("[WARN] %s: skip %q, %v", p.Name, cand.Title, err)
		}
		if !ok {
			skipped++
			continue
		}
		created++
	}

	msg := fmt.Sprintf("%d new, %d skipped", created, skipped)
	if seeded {
		msg += ", seed data"
	}
	lgr.Printf("[INFO] %s: %s", p.Name, msg)
	return domain.ScrapeResult{Success: true, Count: created, Message: msg}, nil
}

// collect runs every source independently and returns all usable candidates.
// The returned error joins source failures and is meaningful only when nothing was collected.
func (p *Pipeline) collect(ctx context.Context) ([]Candidate, error) {
	var res []Candidate
	var errs []error
	for _, src := range p.Sources {
		items, err := src.Extract(ctx)
		if err != nil {
			lgr.Printf("[WARN] %s: source %s failed, %v", p.Name, src.Name(), err)
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name(), err))
			continue
		}
		usable := 0
		for _, item := range items {
			item.Title = strings.Join(strings.Fields(item.Title), " ")
			if item.Title == "" {
				continue
			}
			if item.Source == "" {
				item.Source = src.Name()
			}
			res = append(res, item)
			usable++
		}
		lgr.Printf("[DEBUG] %s: source %s gave %d usable items of %d", p.Name, src.Name(), usable, len(items))
	}
	return res, errors.Join(errs...)
}

// ingestOne stores a single candidate, returns true if a new record was created
func (p *Pipeline) ingestOne(ctx context.Context, cand Candidate, now time.Time) (bool, error) {
	title := strings.TrimSpace(cand.Title)
	if title == "" {
		return false, errors.New("empty title")
	}

	existing, err := p.Store.FindByTitle(ctx, p.Collection, title)
	if err != nil {
		return false, fmt.Errorf("find by title: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	rec := &domain.ContentRecord{
		Collection:  p.Collection,
		Title:       title,
		Slug:        slug.Make(title),
		Description: strings.TrimSpace(cand.Description),
		Content:     strings.TrimSpace(cand.Content),
		Source:      cand.Source,
		SourceURL:   cand.Link,
		Image:       cand.Image,
		Category:    cand.Category,
		Location:    strings.TrimSpace(cand.Location),
		StartDate:   cand.Date,
		EndDate:     cand.EndDate,
		IsActive:    true,
		CreatedAt:   now,
	}
	if rec.Category == "" {
		rec.Category = p.Category
	}
	if rec.StartDate.IsZero() {
		rec.StartDate = now
	}
	if rec.Content == "" {
		rec.Content = rec.Description
	}

	if p.Enricher != nil {
		if err := p.Enricher.Enrich(ctx, cand, rec); err != nil {
			return false, err
		}
	}

	if err := p.Store.Create(ctx, p.Collection, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			lgr.Printf("[DEBUG] %s: %q already exists", p.Name, title)
			return false, nil
		}
		return false, fmt.Errorf("create: %w", err)
	}
	lgr.Printf("[DEBUG] %s: created %q (%s)", p.Name, rec.Title, rec.Slug)
	return true, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
