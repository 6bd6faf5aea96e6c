package feed

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// Item is a single normalized feed entry
type Item struct {
	GUID        string
	Title       string
	Link        string
	Description string // plain text, markup stripped
	Content     string
	ImageURL    string
	Published   time.Time
}

// Parser parses RSS/Atom documents fetched by the transport
type Parser struct {
	policy *bluemonday.Policy
}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{policy: bluemonday.StrictPolicy()}
}

// Parse converts a raw RSS/Atom body into items
func (p *Parser) Parse(body []byte) ([]Item, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, fi := range parsed.Items {
		item := Item{
			Title:       strings.TrimSpace(fi.Title),
			Link:        strings.TrimSpace(fi.Link),
			Description: p.PlainText(fi.Description),
			Content:     fi.Content,
			GUID:        fi.GUID,
		}
		if item.GUID == "" {
			item.GUID = item.Link
		}

		if fi.PublishedParsed != nil {
			item.Published = *fi.PublishedParsed
		} else if fi.UpdatedParsed != nil {
			item.Published = *fi.UpdatedParsed
		}

		item.ImageURL = imageOf(fi)
		items = append(items, item)
	}

	return items, nil
}

// PlainText strips markup and collapses whitespace
func (p *Parser) PlainText(s string) string {
	text := html.UnescapeString(p.policy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// imageOf picks the item image, then the first image enclosure
func imageOf(fi *gofeed.Item) string {
	if fi.Image != nil && fi.Image.URL != "" {
		return fi.Image.URL
	}
	for _, enc := range fi.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// MatchKeywords reports whether title or description contains any keyword, case-insensitive.
// An empty keyword list matches everything.
func MatchKeywords(item Item, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	haystack := strings.ToLower(item.Title + " " + item.Description)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
