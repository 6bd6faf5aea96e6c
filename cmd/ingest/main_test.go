package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assocweb/ingest/pkg/config"
	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/images"
	"github.com/assocweb/ingest/pkg/repository"
	"github.com/assocweb/ingest/pkg/scraper"
)

const bulletin = `<?xml version="1.0" encoding="UTF-8"?>
<Tarih_Date Tarih="17.10.2025" Date="10/17/2025" Bulten_No="2025/196">
<Currency CrossOrder="0" Kod="USD" CurrencyCode="USD"><Unit>1</Unit><ForexBuying>41.7556</ForexBuying><ForexSelling>41.8308</ForexSelling></Currency>
<Currency CrossOrder="9" Kod="EUR" CurrencyCode="EUR"><Unit>1</Unit><ForexBuying>48.6844</ForexBuying><ForexSelling>48.7721</ForexSelling></Currency>
<Currency CrossOrder="10" Kod="GBP" CurrencyCode="GBP"><Unit>1</Unit><ForexBuying>55.8321</ForexBuying><ForexSelling>56.1232</ForexSelling></Currency>
</Tarih_Date>`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ingest.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: writeConfig(t, "invalid: yaml: content: [")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")

	err = run(ctx, Opts{Config: writeConfig(t, "images:\n  type: ftp\n")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")
}

func TestRun_RunOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /haberler", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><ul class="news">
<li><a href="/haber/1">İhracatta yeni destek dönemi</a><img src="/img/1.jpg"><p>Destek kapsamı genişledi.</p></li>
</ul></body></html>`))
	})
	mux.HandleFunc("GET /haber/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>İhracatta yeni destek dönemi</title></head>
<body><article><p>Destek kapsamı genişledi ve yeni sektörler eklendi.</p></article></body></html>`))
	})
	mux.HandleFunc("GET /img/1.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("\xff\xd8\xff\xe0 fake jpeg body"))
	})
	mux.HandleFunc("GET /kurlar/today.xml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(bulletin))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ingest.db")
	cfgPath := writeConfig(t, fmt.Sprintf(`
database:
  dsn: "file:%s"
  max_open_conns: 1
sources:
  news:
    - name: assoc-news
      url: %s/haberler
      selectors: {item: "ul.news li", title: "a", image: "img", description: "p"}
currency:
  url: %s/kurlar/today.xml
images:
  dir: %s
  base_url: /images
notify:
  enabled: false
`, dbPath, ts.URL, ts.URL, filepath.Join(dir, "images")))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, Opts{Config: cfgPath, RunOnce: true}))

	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: "file:" + dbPath, MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	news, err := repos.Content.List(ctx, domain.CollectionNews, 10)
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "İhracatta yeni destek dönemi", news[0].Title)
	assert.Equal(t, ts.URL+"/haber/1", news[0].SourceURL)
	assert.Regexp(t, `^/images/news/[0-9a-f-]{36}\.jpg$`, news[0].Image)

	files, err := os.ReadDir(filepath.Join(dir, "images", "news"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	usd, err := repos.Indicator.Get(ctx, "USD", 2025, 10)
	require.NoError(t, err)
	require.NotNil(t, usd)
	assert.InDelta(t, 41.7556, usd.Value, 0.0001)
	count, err := repos.Indicator.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// kinds without sources are filled from seed data
	fairs, err := repos.Content.Count(ctx, domain.CollectionFair)
	require.NoError(t, err)
	assert.Positive(t, fairs)

	// second run creates nothing new
	require.NoError(t, run(ctx, Opts{Config: cfgPath, RunOnce: true}))
	news, err = repos.Content.List(ctx, domain.CollectionNews, 10)
	require.NoError(t, err)
	assert.Len(t, news, 1)
}

func TestRun_ServerStartStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfgPath := writeConfig(t, fmt.Sprintf(`
database:
  dsn: "file:%s"
images:
  dir: %s
schedule:
  daily_scrape: "off"
  weekly_scrape: "off"
  notify: "off"
  currency: "off"
`, filepath.Join(t.TempDir(), "ingest.db"), t.TempDir()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: cfgPath, Listen: fmt.Sprintf("127.0.0.1:%d", port)}) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/scrapers", port)
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url) //nolint:gosec // test url
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	var status map[string]domain.ScraperStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.NoError(t, resp.Body.Close())
	assert.Len(t, status, len(scraper.Kinds)+1)
	assert.Equal(t, domain.StateIdle, status["currency"].State)
	assert.Equal(t, domain.StateIdle, status["news"].State)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestMakeSources(t *testing.T) {
	list := []config.SourceConfig{
		{Name: "page", Type: config.SourceHTML, URL: "https://example.com/list", Selectors: config.SelectorsConfig{Item: "li"}},
		{Name: "feed", Type: config.SourceFeed, URL: "https://example.com/rss", Keywords: []string{"fuar"}},
	}
	sources := makeSources(list, nil, time.UTC)
	require.Len(t, sources, 2)
	assert.IsType(t, &scraper.HTMLSource{}, sources[0])
	assert.Equal(t, "page", sources[0].Name())
	assert.IsType(t, &scraper.FeedSource{}, sources[1])
	assert.Equal(t, "feed", sources[1].Name())
}

func TestMakeImageStore(t *testing.T) {
	st, err := makeImageStore(context.Background(), config.ImagesConfig{Type: config.ImagesLocal, Dir: t.TempDir(), BaseURL: "/images"})
	require.NoError(t, err)
	assert.IsType(t, &images.LocalStore{}, st)

	st, err = makeImageStore(context.Background(), config.ImagesConfig{Type: config.ImagesS3,
		S3: config.S3Config{Bucket: "b", Region: "eu-central-1", AccessKey: "key", SecretKey: "secret"}})
	require.NoError(t, err)
	assert.IsType(t, &images.S3Store{}, st)
}

func TestSetupLog(t *testing.T) {
	setupLog(false, true)
	setupLog(true, false, "", "secret")
}
