package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assocweb/ingest/pkg/fetch"
)

func TestExtractor_Extract(t *testing.T) {
	paragraph := strings.Repeat("The association published a detailed report about textile exports and new markets. ", 8)
	mux := http.NewServeMux()
	mux.HandleFunc("/news/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><head>
			<title>Record exports</title>
			<meta property="og:title" content="Record exports">
			<meta property="og:image" content="/media/cover.png">
			</head><body><article><h1>Record exports</h1>
			<p>` + paragraph + `</p><p>` + paragraph + `</p></article></body></html>`))
	})
	mux.HandleFunc("/news/no-image", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>t</title></head><body><article><p>` + paragraph + `</p></article></body></html>`))
	})
	mux.HandleFunc("/news/twitter", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><meta name="twitter:image" content="https://cdn.example.com/t.jpg"></head><body></body></html>`))
	})
	mux.HandleFunc("/news/empty", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head></head><body></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	ex := NewExtractor(fetch.New(fetch.Config{}))

	t.Run("image from open graph is absolute", func(t *testing.T) {
		article, err := ex.Extract(context.Background(), server.URL+"/news/1")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/media/cover.png", article.Image)
		assert.Equal(t, "Record exports", article.Title)
	})

	t.Run("text without image", func(t *testing.T) {
		article, err := ex.Extract(context.Background(), server.URL+"/news/no-image")
		require.NoError(t, err)
		assert.Empty(t, article.Image)
		assert.Contains(t, article.Text, "textile exports")
	})

	t.Run("twitter image fallback", func(t *testing.T) {
		article, err := ex.Extract(context.Background(), server.URL+"/news/twitter")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/t.jpg", article.Image)
	})

	t.Run("nothing to extract", func(t *testing.T) {
		_, err := ex.Extract(context.Background(), server.URL+"/news/empty")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extract content")
	})

	t.Run("fetch error passes through", func(t *testing.T) {
		_, err := ex.Extract(context.Background(), server.URL+"/missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, fetch.ErrFetch)
	})
}
