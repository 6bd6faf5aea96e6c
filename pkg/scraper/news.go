package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/assocweb/ingest/pkg/domain"
)

// ImageGate completes news records with a downloaded cover image.
// A news item without a stored image is never persisted.
type ImageGate struct {
	fetcher   Fetcher
	images    ImageStore
	extractor ArticleExtractor
	dir       string
}

// NewImageGate makes a gate storing images under dir, extractor is optional
func NewImageGate(fetcher Fetcher, images ImageStore, extractor ArticleExtractor, dir string) *ImageGate {
	if dir == "" {
		dir = "news"
	}
	return &ImageGate{fetcher: fetcher, images: images, extractor: extractor, dir: dir}
}

// Enrich finds the cover image on the candidate or its detail page, downloads and stores it
func (g *ImageGate) Enrich(ctx context.Context, cand Candidate, rec *domain.ContentRecord) error {
	imageURL := cand.Image
	if g.extractor != nil && cand.Link != "" && (imageURL == "" || cand.Content == "") {
		article, err := g.extractor.Extract(ctx, cand.Link)
		switch {
		case err != nil:
			lgr.Printf("[DEBUG] news: no article data for %s, %v", cand.Link, err)
		default:
			if imageURL == "" {
				imageURL = article.Image
			}
			if cand.Content == "" && article.Text != "" {
				rec.Content = article.Text
			}
		}
	}
	if imageURL == "" {
		return errors.New("no cover image")
	}

	data := g.fetcher.FetchBinary(ctx, imageURL)
	if len(data) == 0 {
		return fmt.Errorf("cover image %s not downloaded", imageURL)
	}

	stored, err := g.images.Save(ctx, g.dir, imageURL, data)
	if err != nil {
		return fmt.Errorf("save cover image: %w", err)
	}
	rec.Image = stored
	return nil
}
