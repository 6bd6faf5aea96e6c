package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/assocweb/ingest/pkg/feed"
	"github.com/assocweb/ingest/pkg/fetch"
)

// DocumentFetcher retrieves raw documents
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) (*fetch.Result, error)
}

// Selectors describe where candidate fields are found on an HTML list page.
// Item selects one node per candidate, other selectors are relative to it.
// Empty Title uses the item text, empty Link uses the first anchor.
type Selectors struct {
	Item        string
	Title       string
	Link        string
	Description string
	Image       string
	Date        string
	DateLayout  string
	Location    string
	Category    string
}

// HTMLSource extracts candidates from an HTML list page with goquery selectors
type HTMLSource struct {
	name     string
	pageURL  string
	sel      Selectors
	fetcher  DocumentFetcher
	location *time.Location
}

// NewHTMLSource makes a list page source
func NewHTMLSource(name, pageURL string, sel Selectors, fetcher DocumentFetcher, loc *time.Location) *HTMLSource {
	return &HTMLSource{name: name, pageURL: pageURL, sel: sel, fetcher: fetcher, location: loc}
}

// Name returns the source name
func (s *HTMLSource) Name() string { return s.name }

// Extract fetches the list page and returns one candidate per matched item
func (s *HTMLSource) Extract(ctx context.Context) ([]Candidate, error) {
	res, err := s.fetcher.FetchDocument(ctx, s.pageURL)
	if err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(bytes.NewReader(res.Body), res.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrParse, s.pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: html %s: %w", ErrParse, s.pageURL, err)
	}

	base, err := url.Parse(res.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("%w: final url %s: %w", ErrParse, res.FinalURL, err)
	}

	items := doc.Find(s.sel.Item)
	if items.Length() == 0 {
		return nil, fmt.Errorf("%w: no items match %q on %s", ErrParse, s.sel.Item, s.pageURL)
	}

	var cands []Candidate
	items.Each(func(_ int, node *goquery.Selection) {
		cands = append(cands, s.candidate(node, base))
	})
	return cands, nil
}

func (s *HTMLSource) candidate(node *goquery.Selection, base *url.URL) Candidate {
	cand := Candidate{Source: s.name}

	if s.sel.Title != "" {
		cand.Title = text(node.Find(s.sel.Title).First())
	} else {
		cand.Title = text(node)
	}

	linkNode := node.Find("a[href]").First()
	if s.sel.Link != "" {
		linkNode = node.Find(s.sel.Link).First()
	}
	if goquery.NodeName(node) == "a" && s.sel.Link == "" {
		linkNode = node
	}
	if href, ok := linkNode.Attr("href"); ok {
		cand.Link = resolveURL(base, href)
	}

	if s.sel.Description != "" {
		cand.Description = text(node.Find(s.sel.Description).First())
	}
	if s.sel.Location != "" {
		cand.Location = text(node.Find(s.sel.Location).First())
	}
	if s.sel.Category != "" {
		cand.Category = text(node.Find(s.sel.Category).First())
	}

	if s.sel.Image != "" {
		img := node.Find(s.sel.Image).First()
		for _, attr := range []string{"data-src", "src", "content", "href"} {
			if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
				cand.Image = resolveURL(base, v)
				break
			}
		}
	}

	if s.sel.Date != "" {
		dateNode := node.Find(s.sel.Date).First()
		raw, ok := dateNode.Attr("datetime")
		if !ok {
			raw = text(dateNode)
		}
		start, end := splitRange(raw)
		cand.Date = parseDate(start, s.sel.DateLayout, s.location)
		if e := parseDate(end, s.sel.DateLayout, s.location); !e.IsZero() {
			cand.EndDate = &e
		}
	}
	return cand
}

// FeedSource extracts candidates from an RSS or Atom feed
type FeedSource struct {
	name     string
	feedURL  string
	keywords []string
	fetcher  *feed.Fetcher
}

// NewFeedSource makes a feed source, keywords limit items to those mentioning any of them
func NewFeedSource(name, feedURL string, keywords []string, transport DocumentFetcher) *FeedSource {
	return &FeedSource{name: name, feedURL: feedURL, keywords: keywords, fetcher: feed.NewFetcher(transport)}
}

// Name returns the source name
func (s *FeedSource) Name() string { return s.name }

// Extract fetches the feed and maps its items to candidates
func (s *FeedSource) Extract(ctx context.Context) ([]Candidate, error) {
	items, err := s.fetcher.Fetch(ctx, s.feedURL, s.keywords)
	if err != nil {
		if errors.Is(err, fetch.ErrFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	res := make([]Candidate, 0, len(items))
	for _, item := range items {
		res = append(res, Candidate{
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			Link:        item.Link,
			Image:       item.ImageURL,
			Source:      s.name,
			Date:        item.Published,
		})
	}
	return res, nil
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

func resolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "javascript:") || strings.HasPrefix(ref, "#") {
		return ""
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ""
	}
	return u.String()
}
