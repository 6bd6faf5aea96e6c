// Package content extracts article text and cover image from detail pages
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"

	"github.com/assocweb/ingest/pkg/fetch"
)

// DocumentFetcher retrieves raw documents
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) (*fetch.Result, error)
}

// Article is what could be extracted from a detail page
type Article struct {
	Title string
	Text  string
	Image string // absolute URL, empty if none found
}

// Extractor extracts article content using trafilatura, with a plain meta-tag fallback for the image
type Extractor struct {
	transport DocumentFetcher
}

// NewExtractor creates a new content extractor
func NewExtractor(transport DocumentFetcher) *Extractor {
	return &Extractor{transport: transport}
}

// Extract fetches pageURL and returns its main text and cover image
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Article, error) {
	res, err := e.transport.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(res.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parse final url %s: %w", res.FinalURL, err)
	}

	article := &Article{}
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   true,
		Deduplicate:     true,
		OriginalURL:     base,
	}
	result, extractErr := trafilatura.Extract(bytes.NewReader(res.Body), opts)
	if extractErr == nil && result != nil {
		article.Title = strings.TrimSpace(result.Metadata.Title)
		article.Text = strings.TrimSpace(result.ContentText)
		article.Image = resolve(base, result.Metadata.Image)
	}

	if article.Image == "" || article.Title == "" {
		e.fromMeta(res.Body, base, article)
	}

	if article.Text == "" && article.Image == "" {
		if extractErr == nil {
			extractErr = errors.New("empty result")
		}
		return nil, fmt.Errorf("extract content from %s: %w", pageURL, extractErr)
	}
	return article, nil
}

// fromMeta fills missing title and image from open graph tags
func (e *Extractor) fromMeta(body []byte, base *url.URL, article *Article) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return
	}
	if article.Image == "" {
		for _, sel := range []string{`meta[property="og:image"]`, `meta[name="twitter:image"]`, `link[rel="image_src"]`} {
			node := doc.Find(sel).First()
			val, ok := node.Attr("content")
			if !ok {
				val, _ = node.Attr("href")
			}
			if img := resolve(base, val); img != "" {
				article.Image = img
				break
			}
		}
	}
	if article.Title == "" {
		if val, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
			article.Title = strings.TrimSpace(val)
		}
	}
}

// resolve makes ref absolute against base, empty in empty out
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ""
	}
	return u.String()
}
