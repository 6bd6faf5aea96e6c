package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assocweb/ingest/pkg/fetch"
)

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testRSS))
	}))
	defer server.Close()

	f := NewFetcher(fetch.New(fetch.Config{}))

	t.Run("no keywords keeps titled items", func(t *testing.T) {
		items, err := f.Fetch(context.Background(), server.URL, nil)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Textile exports hit record", items[0].Title)
		assert.Equal(t, "Football results", items[1].Title)
	})

	t.Run("keywords filter items", func(t *testing.T) {
		items, err := f.Fetch(context.Background(), server.URL, []string{"textile", "apparel"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Textile exports hit record", items[0].Title)
	})

	t.Run("fetch failure", func(t *testing.T) {
		failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer failing.Close()
		_, err := f.Fetch(context.Background(), failing.URL, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrFetch)
	})

	t.Run("not a feed", func(t *testing.T) {
		html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("plain text body"))
		}))
		defer html.Close()
		_, err := f.Fetch(context.Background(), html.URL, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})
}
