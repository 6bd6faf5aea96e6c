package scraper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/repository"
	"github.com/assocweb/ingest/pkg/scraper/mocks"
)

// memStore returns a content store mock keeping records in memory, unique by title per collection
func memStore() *mocks.ContentStoreMock {
	var mu sync.Mutex
	records := map[domain.Collection]map[string]domain.ContentRecord{}
	return &mocks.ContentStoreMock{
		FindByTitleFunc: func(_ context.Context, c domain.Collection, title string) (*domain.ContentRecord, error) {
			mu.Lock()
			defer mu.Unlock()
			if rec, ok := records[c][title]; ok {
				return &rec, nil
			}
			return nil, nil
		},
		CreateFunc: func(_ context.Context, c domain.Collection, rec *domain.ContentRecord) error {
			mu.Lock()
			defer mu.Unlock()
			if records[c] == nil {
				records[c] = map[string]domain.ContentRecord{}
			}
			if _, ok := records[c][rec.Title]; ok {
				return repository.ErrDuplicate
			}
			rec.ID = int64(len(records[c]) + 1)
			records[c][rec.Title] = *rec
			return nil
		},
	}
}

type staticSource struct {
	name  string
	items []Candidate
	err   error
	calls int
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Extract(context.Context) ([]Candidate, error) {
	s.calls++
	return s.items, s.err
}

func TestPipeline_Ingest(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("idempotent re-run", func(t *testing.T) {
		store := memStore()
		good := &staticSource{name: "good", items: []Candidate{
			{Title: "Report one", Description: "first"},
			{Title: "  Report   two ", Description: "second", Date: now.AddDate(0, 0, -3)},
			{Title: "   "},
		}}
		broken := &staticSource{name: "broken", err: errors.New("connection refused")}
		p := &Pipeline{Name: "reports", Collection: domain.CollectionReport, Category: "report",
			Sources: []Source{broken, good}, Store: store, Now: func() time.Time { return now }}

		res, err := p.Ingest(context.Background())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 2, res.Count)
		assert.Equal(t, 1, broken.calls, "failed source doesn't stop others")

		calls := store.CreateCalls()
		require.Len(t, calls, 2)
		first := calls[0].Rec
		assert.Equal(t, "Report one", first.Title)
		assert.Equal(t, domain.CollectionReport, calls[0].C)
		assert.Equal(t, "report", first.Category)
		assert.Equal(t, "good", first.Source)
		assert.Equal(t, now, first.StartDate, "missing date defaults to now")
		assert.True(t, first.IsActive)
		assert.Equal(t, "first", first.Content)
		assert.Regexp(t, `^report-one-[0-9a-f]{8}$`, first.Slug)
		assert.Equal(t, "Report two", calls[1].Rec.Title)
		assert.Equal(t, now.AddDate(0, 0, -3), calls[1].Rec.StartDate)

		res, err = p.Ingest(context.Background())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 0, res.Count)
		assert.Len(t, store.CreateCalls(), 2, "nothing created on second run")
	})

	t.Run("seed fallback when sources yield nothing", func(t *testing.T) {
		store := memStore()
		p := &Pipeline{Name: "fairs", Collection: domain.CollectionFair, Category: "fair",
			Sources: []Source{&staticSource{name: "down", err: errors.New("timeout")}, &staticSource{name: "empty"}},
			Seeds:   fairSeeds, Store: store, Now: func() time.Time { return now }}

		res, err := p.Ingest(context.Background())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, len(fairSeeds(now)), res.Count)
		assert.Contains(t, res.Message, "seed data")
		for _, call := range store.CreateCalls() {
			assert.True(t, call.Rec.StartDate.After(now), "seeded fairs are upcoming")
			assert.NotNil(t, call.Rec.EndDate)
		}
	})

	t.Run("all sources failed and no seeds", func(t *testing.T) {
		p := &Pipeline{Name: "x", Collection: domain.CollectionNews,
			Sources: []Source{&staticSource{name: "down", err: errors.New("timeout")}}, Store: memStore()}
		_, err := p.Ingest(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source down: timeout")
	})

	t.Run("no sources and no seeds", func(t *testing.T) {
		p := &Pipeline{Name: "x", Collection: domain.CollectionNews, Store: memStore()}
		res, err := p.Ingest(context.Background())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Zero(t, res.Count)
	})

	t.Run("store errors skip the item", func(t *testing.T) {
		store := &mocks.ContentStoreMock{
			FindByTitleFunc: func(_ context.Context, _ domain.Collection, title string) (*domain.ContentRecord, error) {
				if title == "broken" {
					return nil, errors.New("disk I/O error")
				}
				return nil, nil
			},
			CreateFunc: func(_ context.Context, _ domain.Collection, rec *domain.ContentRecord) error {
				switch rec.Title {
				case "raced":
					return repository.ErrDuplicate
				case "failing":
					return errors.New("readonly database")
				}
				return nil
			},
		}
		src := &staticSource{name: "src", items: []Candidate{{Title: "broken"}, {Title: "raced"}, {Title: "failing"}, {Title: "fine"}}}
		p := &Pipeline{Name: "projects", Collection: domain.CollectionProject, Sources: []Source{src}, Store: store}

		res, err := p.Ingest(context.Background())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, "1 new, 3 skipped", res.Message)
		assert.Len(t, store.CreateCalls(), 3)
	})

	t.Run("enricher discards", func(t *testing.T) {
		store := memStore()
		src := &staticSource{name: "src", items: []Candidate{{Title: "keep"}, {Title: "drop"}}}
		p := &Pipeline{Name: "news", Collection: domain.CollectionNews, Sources: []Source{src}, Store: store,
			Enricher: enricherFunc(func(_ context.Context, cand Candidate, rec *domain.ContentRecord) error {
				if cand.Title == "drop" {
					return errors.New("no image")
				}
				rec.Image = "/images/news/x.jpg"
				return nil
			})}
		res, err := p.Ingest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		require.Len(t, store.CreateCalls(), 1)
		assert.Equal(t, "/images/news/x.jpg", store.CreateCalls()[0].Rec.Image)
	})
}

type enricherFunc func(ctx context.Context, cand Candidate, rec *domain.ContentRecord) error

func (f enricherFunc) Enrich(ctx context.Context, cand Candidate, rec *domain.ContentRecord) error {
	return f(ctx, cand, rec)
}

func TestKinds(t *testing.T) {
	names := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		names = append(names, k.Name)
		assert.True(t, k.Collection.Valid(), k.Name)
		assert.NotEmpty(t, k.Seeds(time.Now()), k.Name)
	}
	assert.Equal(t, []string{"news", "legislation", "incentives", "reports", "training", "fairs", "projects"}, names)

	k, ok := KindByName("incentives")
	require.True(t, ok)
	assert.Equal(t, domain.CollectionLegislation, k.Collection)
	assert.Equal(t, "incentive", k.Category)

	_, ok = KindByName("currency")
	assert.False(t, ok)
}

func TestContentScraper(t *testing.T) {
	store := memStore()
	src := &staticSource{name: "src", items: []Candidate{{Title: "Grant program"}}}
	s := NewContentScraper(KindIncentives, store, []Source{src})
	assert.Equal(t, "incentives", s.Name())

	res, err := s.Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, store.CreateCalls(), 1)
	assert.Equal(t, domain.CollectionLegislation, store.CreateCalls()[0].C)
	assert.Equal(t, "incentive", store.CreateCalls()[0].Rec.Category)
}
