package feed

import (
	"context"
	"fmt"

	"github.com/assocweb/ingest/pkg/fetch"
)

// DocumentFetcher retrieves raw documents
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) (*fetch.Result, error)
}

// Fetcher fetches a feed through the transport and parses it
type Fetcher struct {
	transport DocumentFetcher
	parser    *Parser
}

// NewFetcher creates a new feed fetcher
func NewFetcher(transport DocumentFetcher) *Fetcher {
	return &Fetcher{transport: transport, parser: NewParser()}
}

// Fetch retrieves and parses a feed, keeping only items matching keywords if any are given
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, keywords []string) ([]Item, error) {
	res, err := f.transport.FetchDocument(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	items, err := f.parser.Parse(res.Body)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", feedURL, err)
	}

	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if !MatchKeywords(item, keywords) {
			continue
		}
		matched = append(matched, item)
	}
	return matched, nil
}
