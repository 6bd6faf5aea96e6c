package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assocweb/ingest/pkg/fetch"
)

const fairsPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Fuarlar</title></head>
<body>
<div class="fair-list">
  <div class="fair">
    <h3><a href="/fuar/itm">ITM Fair</a></h3>
    <p class="desc">Textile   machinery
      fair</p>
    <span class="place">İstanbul</span>
    <span class="date">10.06.2025 - 14.06.2025</span>
    <img data-src="/img/itm.jpg" src="/img/placeholder.gif">
  </div>
  <div class="fair">
    <h3><a href="https://other.example.com/texworld">Texworld</a></h3>
    <span class="date">3 Temmuz 2025</span>
  </div>
  <div class="fair">
    <h3></h3>
  </div>
</div>
</body></html>`

func TestHTMLSource_Extract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fuarlar", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(fairsPage))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/fuarlar", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/changed", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul><li>nothing here</li></ul></body></html>`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	loc := time.FixedZone("TRT", 3*60*60)
	sel := Selectors{Item: "div.fair", Title: "h3", Description: "p.desc", Location: ".place", Date: ".date", Image: "img"}
	client := fetch.New(fetch.Config{})

	t.Run("list page", func(t *testing.T) {
		src := NewHTMLSource("fairs-page", ts.URL+"/old", sel, client, loc)
		assert.Equal(t, "fairs-page", src.Name())

		cands, err := src.Extract(context.Background())
		require.NoError(t, err)
		require.Len(t, cands, 3)

		itm := cands[0]
		assert.Equal(t, "ITM Fair", itm.Title)
		assert.Equal(t, ts.URL+"/fuar/itm", itm.Link, "relative link resolved against final url")
		assert.Equal(t, "Textile machinery fair", itm.Description)
		assert.Equal(t, "İstanbul", itm.Location)
		assert.Equal(t, ts.URL+"/img/itm.jpg", itm.Image, "lazy image preferred")
		assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, loc), itm.Date)
		require.NotNil(t, itm.EndDate)
		assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, loc), *itm.EndDate)
		assert.Equal(t, "fairs-page", itm.Source)

		tw := cands[1]
		assert.Equal(t, "https://other.example.com/texworld", tw.Link)
		assert.Equal(t, time.Date(2025, 7, 3, 0, 0, 0, 0, loc), tw.Date, "turkish month name")
		assert.Nil(t, tw.EndDate)
		assert.Empty(t, tw.Image)

		assert.Empty(t, cands[2].Title, "empty items are left for the pipeline to drop")
	})

	t.Run("markup changed", func(t *testing.T) {
		src := NewHTMLSource("fairs-page", ts.URL+"/changed", sel, client, loc)
		_, err := src.Extract(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("page missing", func(t *testing.T) {
		src := NewHTMLSource("fairs-page", ts.URL+"/missing", sel, client, loc)
		_, err := src.Extract(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrFetch)
		assert.NotErrorIs(t, err, ErrParse)
	})

	t.Run("anchor items without title selector", func(t *testing.T) {
		src := NewHTMLSource("links", ts.URL+"/fuarlar", Selectors{Item: "h3 a"}, client, loc)
		cands, err := src.Extract(context.Background())
		require.NoError(t, err)
		require.Len(t, cands, 2)
		assert.Equal(t, "ITM Fair", cands[0].Title)
		assert.Equal(t, ts.URL+"/fuar/itm", cands[0].Link)
	})
}

func TestFeedSource_Extract(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Sector news</title>
<item><title>Tekstil ihracatı arttı</title><link>https://news.example.com/1</link>
<description>Exports grew</description><pubDate>Mon, 05 May 2025 10:00:00 +0000</pubDate>
<enclosure url="https://news.example.com/1.jpg" type="image/jpeg" length="100"/></item>
<item><title>Football results</title><link>https://news.example.com/2</link><description>sports</description></item>
</channel></rss>`

	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	})
	mux.HandleFunc("/html", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("just text"))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	client := fetch.New(fetch.Config{})

	t.Run("keywords filter", func(t *testing.T) {
		src := NewFeedSource("sector", ts.URL+"/rss", []string{"tekstil"}, client)
		cands, err := src.Extract(context.Background())
		require.NoError(t, err)
		require.Len(t, cands, 1)
		assert.Equal(t, "Tekstil ihracatı arttı", cands[0].Title)
		assert.Equal(t, "https://news.example.com/1", cands[0].Link)
		assert.Equal(t, "https://news.example.com/1.jpg", cands[0].Image)
		assert.Equal(t, "sector", cands[0].Source)
		assert.Equal(t, 2025, cands[0].Date.Year())
	})

	t.Run("no keywords", func(t *testing.T) {
		src := NewFeedSource("sector", ts.URL+"/rss", nil, client)
		cands, err := src.Extract(context.Background())
		require.NoError(t, err)
		assert.Len(t, cands, 2)
	})

	t.Run("not a feed", func(t *testing.T) {
		src := NewFeedSource("sector", ts.URL+"/html", nil, client)
		_, err := src.Extract(context.Background())
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("fetch failure", func(t *testing.T) {
		src := NewFeedSource("sector", ts.URL+"/nope", nil, client)
		_, err := src.Extract(context.Background())
		assert.ErrorIs(t, err, fetch.ErrFetch)
		assert.NotErrorIs(t, err, ErrParse)
	})
}

func TestParseDate(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		in     string
		layout string
		want   time.Time
	}{
		{"2025-03-01", "", time.Date(2025, 3, 1, 0, 0, 0, 0, loc)},
		{"01.03.2025", "", time.Date(2025, 3, 1, 0, 0, 0, 0, loc)},
		{"1.3.2025", "", time.Date(2025, 3, 1, 0, 0, 0, 0, loc)},
		{"15 Mart 2025", "", time.Date(2025, 3, 15, 0, 0, 0, 0, loc)},
		{"15  Aralık\n2025", "", time.Date(2025, 12, 15, 0, 0, 0, 0, loc)},
		{"March 15, 2025", "", time.Date(2025, 3, 15, 0, 0, 0, 0, loc)},
		{"2025/03/15", "2006/01/02", time.Date(2025, 3, 15, 0, 0, 0, 0, loc)},
		{"", "", time.Time{}},
		{"soon", "", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDate(tt.in, tt.layout, loc))
		})
	}
}

func TestSplitRange(t *testing.T) {
	start, end := splitRange("10.06.2025 - 14.06.2025")
	assert.Equal(t, "10.06.2025", start)
	assert.Equal(t, "14.06.2025", end)

	start, end = splitRange(" 10.06.2025 ")
	assert.Equal(t, "10.06.2025", start)
	assert.Empty(t, end)
}
