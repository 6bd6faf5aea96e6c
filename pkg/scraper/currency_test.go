package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/fetch"
	"github.com/assocweb/ingest/pkg/scraper/mocks"
)

const todayXML = `<?xml version="1.0" encoding="ISO-8859-9"?>
<Tarih_Date Tarih="17.10.2025" Date="10/17/2025" Bulten_No="2025/196">
<Currency CrossOrder="0" Kod="USD" CurrencyCode="USD">
  <Unit>1</Unit><Isim>ABD DOLARI</Isim><CurrencyName>US DOLLAR</CurrencyName>
  <ForexBuying>41.7556</ForexBuying><ForexSelling>41.8308</ForexSelling>
</Currency>
<Currency CrossOrder="1" Kod="AUD" CurrencyCode="AUD">
  <Unit>1</Unit><Isim>AVUSTRALYA DOLARI</Isim><CurrencyName>AUSTRALIAN DOLLAR</CurrencyName>
  <ForexBuying>27.0489</ForexBuying><ForexSelling>27.2253</ForexSelling>
</Currency>
<Currency CrossOrder="9" Kod="EUR" CurrencyCode="EUR">
  <Unit>1</Unit><Isim>EURO</Isim><CurrencyName>EURO</CurrencyName>
  <ForexBuying>48.6844</ForexBuying><ForexSelling>48.7721</ForexSelling>
</Currency>
<Currency CrossOrder="10" Kod="GBP" CurrencyCode="GBP">
  <Unit>1</Unit><Isim>İNGİLİZ STERLİNİ</Isim><CurrencyName>POUND STERLING</CurrencyName>
  <ForexBuying>55.9723</ForexBuying><ForexSelling></ForexSelling>
</Currency>
</Tarih_Date>`

func latin5(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.ISO8859_9.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

// memIndicators returns an indicator store mock keyed by (category, year, month)
func memIndicators() (*mocks.IndicatorStoreMock, map[string]domain.EconomicIndicator) {
	var mu sync.Mutex
	rows := map[string]domain.EconomicIndicator{}
	return &mocks.IndicatorStoreMock{
		UpsertIndicatorFunc: func(_ context.Context, ind *domain.EconomicIndicator) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			key := ind.Category + "/" + time.Date(ind.Year, time.Month(ind.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
			_, exists := rows[key]
			rows[key] = *ind
			return !exists, nil
		},
	}, rows
}

func TestCurrencyScraper_Scrape(t *testing.T) {
	body := latin5(t, todayXML)
	mux := http.NewServeMux()
	mux.HandleFunc("/kurlar/today.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(body)
	})
	mux.HandleFunc("/broken.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<Tarih_Date><Currency"))
	})
	mux.HandleFunc("/other.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<Tarih_Date Date="10/17/2025"><Currency CurrencyCode="JPY"><ForexBuying>0.27</ForexBuying></Currency></Tarih_Date>`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	loc := time.FixedZone("TRT", 3*60*60)
	client := fetch.New(fetch.Config{})

	t.Run("upsert allowed codes, update on second run", func(t *testing.T) {
		store, rows := memIndicators()
		s := NewCurrencyScraper(client, store, ts.URL+"/kurlar/today.xml", nil, loc)
		assert.Equal(t, "currency", s.Name())

		res, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, "3 created, 0 updated for 2025-10", res.Message)

		require.Len(t, rows, 3)
		usd := rows["USD/2025-10"]
		assert.Equal(t, "ABD DOLARI", usd.Title)
		assert.Equal(t, "usd-2025-10", usd.Slug)
		assert.Equal(t, 2025, usd.Year)
		assert.Equal(t, 10, usd.Month)
		assert.InDelta(t, 41.7556, usd.Value, 0.00001)
		assert.InDelta(t, 41.8308, usd.SellValue, 0.00001)
		assert.Equal(t, 1, usd.Unit)
		assert.Equal(t, "TCMB", usd.Source)
		assert.True(t, usd.IsActive)

		gbp := rows["GBP/2025-10"]
		assert.Equal(t, "İNGİLİZ STERLİNİ", gbp.Title, "decoded from ISO-8859-9")
		assert.InDelta(t, 55.9723, gbp.SellValue, 0.00001, "missing selling rate falls back to buying")
		_, hasAUD := rows["AUD/2025-10"]
		assert.False(t, hasAUD)

		res, err = s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, res.Count)
		assert.Equal(t, "0 created, 3 updated for 2025-10", res.Message)
		assert.Len(t, rows, 3)
	})

	t.Run("custom allow-list", func(t *testing.T) {
		store, rows := memIndicators()
		s := NewCurrencyScraper(client, store, ts.URL+"/kurlar/today.xml", []string{"aud"}, loc)
		res, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Contains(t, rows, "AUD/2025-10")
	})

	t.Run("store failure skips the code", func(t *testing.T) {
		store := &mocks.IndicatorStoreMock{UpsertIndicatorFunc: func(_ context.Context, ind *domain.EconomicIndicator) (bool, error) {
			if ind.Category == "EUR" {
				return false, errors.New("locked")
			}
			return true, nil
		}}
		s := NewCurrencyScraper(client, store, ts.URL+"/kurlar/today.xml", nil, loc)
		res, err := s.Scrape(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, res.Count)
		assert.Len(t, store.UpsertIndicatorCalls(), 3)
	})

	t.Run("malformed xml", func(t *testing.T) {
		store, _ := memIndicators()
		s := NewCurrencyScraper(client, store, ts.URL+"/broken.xml", nil, loc)
		_, err := s.Scrape(context.Background())
		assert.ErrorIs(t, err, ErrParse)
		assert.Empty(t, store.UpsertIndicatorCalls())
	})

	t.Run("no allowed codes", func(t *testing.T) {
		store, _ := memIndicators()
		s := NewCurrencyScraper(client, store, ts.URL+"/other.xml", nil, loc)
		_, err := s.Scrape(context.Background())
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("fetch failure", func(t *testing.T) {
		store, _ := memIndicators()
		s := NewCurrencyScraper(client, store, ts.URL+"/missing.xml", nil, loc)
		_, err := s.Scrape(context.Background())
		assert.ErrorIs(t, err, fetch.ErrFetch)
	})
}

func TestParseRate(t *testing.T) {
	v, err := parseRate(" 41,7556 ")
	require.NoError(t, err)
	assert.InDelta(t, 41.7556, v, 0.00001)

	_, err = parseRate("")
	require.Error(t, err)
	_, err = parseRate("n/a")
	require.Error(t, err)
}
