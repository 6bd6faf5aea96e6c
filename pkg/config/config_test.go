package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_SMTP_PASSWORD", "secret")
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

fetch:
  document_timeout: 20s
  max_redirects: 3

sources:
  news:
    - name: assoc-news
      url: https://example.com/haberler
      selectors:
        item: ".news-item"
        title: "h3"
        image: "img"
        date: ".date"
        date_layout: "02.01.2006"
  fairs:
    - name: fair-feed
      type: feed
      url: https://example.com/fairs.xml
      keywords: [fuar, expo]

currency:
  codes: [usd, " eur "]

schedule:
  timezone: UTC
  weekly_scrape: "off"

notify:
  days_ahead: 5
  pacing: 500ms
  site_name: Assoc
  smtp:
    host: smtp.example.com
    from: noreply@example.com
    password: ${TEST_SMTP_PASSWORD}

images:
  type: s3
  s3:
    bucket: assoc-images
    region: eu-central-1
`
		configPath := filepath.Join(t.TempDir(), "test-config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o600))

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 20*time.Second, cfg.Fetch.DocumentTimeout)
		assert.Equal(t, 15*time.Second, cfg.Fetch.BinaryTimeout)
		assert.Equal(t, 3, cfg.Fetch.MaxRedirects)

		require.Len(t, cfg.Sources["news"], 1)
		news := cfg.Sources["news"][0]
		assert.Equal(t, SourceHTML, news.Type)
		assert.Equal(t, ".news-item", news.Selectors.Item)
		assert.Equal(t, "02.01.2006", news.Selectors.DateLayout)
		require.Len(t, cfg.Sources["fairs"], 1)
		assert.Equal(t, SourceFeed, cfg.Sources["fairs"][0].Type)
		assert.Equal(t, []string{"fuar", "expo"}, cfg.Sources["fairs"][0].Keywords)

		assert.Equal(t, []string{"USD", "EUR"}, cfg.Currency.Codes)
		assert.Equal(t, "https://www.tcmb.gov.tr/kurlar/today.xml", cfg.Currency.URL)

		assert.Equal(t, time.UTC, cfg.Location())
		assert.Equal(t, "", Spec(cfg.Schedule.WeeklyScrape))
		assert.Equal(t, "0 3 * * *", Spec(cfg.Schedule.DailyScrape))

		assert.True(t, cfg.Notify.Enabled)
		assert.Equal(t, 5, cfg.Notify.DaysAhead)
		assert.Equal(t, 500*time.Millisecond, cfg.Notify.Pacing)
		assert.Equal(t, "secret", cfg.Notify.SMTP.Password)
		assert.Equal(t, 587, cfg.Notify.SMTP.Port)

		assert.Equal(t, ImagesS3, cfg.Images.Type)
		assert.Equal(t, "assoc-images", cfg.Images.S3.Bucket)
		assert.Equal(t, "eu-central-1", cfg.Images.S3.Region)
	})

	t.Run("defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "test-config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("server:\n  listen: \":8081\"\n"), 0o600))

		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 5*time.Minute, cfg.Server.Timeout)
		assert.Equal(t, "file:ingest.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Fetch.MaxRedirects)
		assert.Empty(t, cfg.Sources)
		assert.Equal(t, []string{"USD", "EUR", "GBP"}, cfg.Currency.Codes)
		assert.Equal(t, "Europe/Istanbul", cfg.Schedule.Timezone)
		assert.Equal(t, "Europe/Istanbul", cfg.Location().String())
		assert.Equal(t, "0 4 * * 1", cfg.Schedule.WeeklyScrape)
		assert.Equal(t, "0 9 * * *", cfg.Schedule.Notify)
		assert.Equal(t, "30 16 * * *", cfg.Schedule.Currency)
		assert.Equal(t, 16, cfg.Runner.QueueSize)
		assert.Equal(t, time.Hour, cfg.Runner.TaskTTL)
		assert.True(t, cfg.Notify.Enabled)
		assert.Equal(t, 7, cfg.Notify.DaysAhead)
		assert.Equal(t, 2*time.Second, cfg.Notify.Pacing)
		assert.Equal(t, ImagesLocal, cfg.Images.Type)
		assert.Equal(t, "var/images", cfg.Images.Dir)
	})

	t.Run("notifications disabled", func(t *testing.T) {
		cfg, err := Parse([]byte("notify:\n  enabled: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Notify.Enabled)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("server: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name string
		yaml string
		err  string
	}{
		{name: "short timeout", yaml: "server:\n  timeout: 10ms\n", err: "server timeout must be at least 1 second"},
		{name: "unknown scraper", yaml: "sources:\n  weather:\n    - {name: w, url: https://example.com}\n",
			err: `sources: unknown scraper "weather"`},
		{name: "missing url", yaml: "sources:\n  news:\n    - {name: n, selectors: {item: li}}\n",
			err: "sources.news[0]: name and url are required"},
		{name: "html without item", yaml: "sources:\n  reports:\n    - {name: r, url: https://example.com}\n",
			err: "sources.reports[0]: selectors.item is required for html source"},
		{name: "unknown source type", yaml: "sources:\n  news:\n    - {name: n, url: https://example.com, type: json}\n",
			err: `sources.news[0]: unknown type "json"`},
		{name: "bad timezone", yaml: "schedule:\n  timezone: Mars/Olympus\n", err: "schedule.timezone"},
		{name: "bad cron", yaml: "schedule:\n  notify: \"every day\"\n", err: "schedule.notify"},
		{name: "negative pacing", yaml: "notify:\n  pacing: -1s\n", err: "notify.pacing must be non-negative"},
		{name: "s3 without bucket", yaml: "images:\n  type: s3\n", err: "images.s3.bucket is required for s3 store"},
		{name: "unknown image store", yaml: "images:\n  type: ftp\n", err: `images.type: unknown store "ftp"`},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
