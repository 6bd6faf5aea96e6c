package scraper

import (
	"context"

	"github.com/assocweb/ingest/pkg/domain"
)

// Kind describes a content domain handled by a ContentScraper
type Kind struct {
	Name       string
	Collection domain.Collection
	Category   string
	Seeds      seedFunc
}

// content domains in run order
var (
	KindNews        = Kind{Name: "news", Collection: domain.CollectionNews, Category: "news", Seeds: newsSeeds}
	KindLegislation = Kind{Name: "legislation", Collection: domain.CollectionLegislation, Category: "legislation", Seeds: legislationSeeds}
	KindIncentives  = Kind{Name: "incentives", Collection: domain.CollectionLegislation, Category: "incentive", Seeds: incentiveSeeds}
	KindReports     = Kind{Name: "reports", Collection: domain.CollectionReport, Category: "report", Seeds: reportSeeds}
	KindTraining    = Kind{Name: "training", Collection: domain.CollectionTraining, Category: "training", Seeds: trainingSeeds}
	KindFairs       = Kind{Name: "fairs", Collection: domain.CollectionFair, Category: "fair", Seeds: fairSeeds}
	KindProjects    = Kind{Name: "projects", Collection: domain.CollectionProject, Category: "project", Seeds: projectSeeds}
)

// Kinds lists all content domains in the order they run
var Kinds = []Kind{KindNews, KindLegislation, KindIncentives, KindReports, KindTraining, KindFairs, KindProjects}

// KindByName returns the content domain with the given name
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// ContentScraper runs the ingestion pipeline for one content domain
type ContentScraper struct {
	pipeline *Pipeline
}

// NewContentScraper makes a scraper for kind reading from sources.
// Incentives share the legislation collection and are told apart by category.
func NewContentScraper(kind Kind, store ContentStore, sources []Source) *ContentScraper {
	return &ContentScraper{pipeline: &Pipeline{
		Name:       kind.Name,
		Collection: kind.Collection,
		Category:   kind.Category,
		Sources:    sources,
		Seeds:      kind.Seeds,
		Store:      store,
	}}
}

// NewNewsScraper makes the news scraper, items pass through the cover image gate
func NewNewsScraper(store ContentStore, sources []Source, gate *ImageGate) *ContentScraper {
	s := NewContentScraper(KindNews, store, sources)
	s.pipeline.Enricher = gate
	return s
}

// Name returns the scraper name
func (s *ContentScraper) Name() string { return s.pipeline.Name }

// Scrape runs the pipeline once
func (s *ContentScraper) Scrape(ctx context.Context) (domain.ScrapeResult, error) {
	return s.pipeline.Ingest(ctx)
}
