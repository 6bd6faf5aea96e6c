package scraper

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html/charset"

	"github.com/assocweb/ingest/pkg/domain"
	"github.com/assocweb/ingest/pkg/slug"
)

// DefaultCurrencyURL is the central bank daily exchange rate bulletin
const DefaultCurrencyURL = "https://www.tcmb.gov.tr/kurlar/today.xml"

// DefaultCurrencies is the allow-list of stored currency codes
var DefaultCurrencies = []string{"USD", "EUR", "GBP"}

// CurrencyScraper upserts monthly exchange rates from the central bank bulletin
type CurrencyScraper struct {
	fetcher DocumentFetcher
	store   IndicatorStore
	url     string
	codes   map[string]bool
	loc     *time.Location
}

// bulletin is the today.xml document
type bulletin struct {
	XMLName    xml.Name       `xml:"Tarih_Date"`
	Tarih      string         `xml:"Tarih,attr"`
	Date       string         `xml:"Date,attr"`
	Currencies []bulletinRate `xml:"Currency"`
}

type bulletinRate struct {
	Code         string `xml:"CurrencyCode,attr"`
	Kod          string `xml:"Kod,attr"`
	Unit         string `xml:"Unit"`
	Name         string `xml:"Isim"`
	CurrencyName string `xml:"CurrencyName"`
	ForexBuying  string `xml:"ForexBuying"`
	ForexSelling string `xml:"ForexSelling"`
}

// NewCurrencyScraper makes a currency scraper, empty url and codes use the defaults
func NewCurrencyScraper(fetcher DocumentFetcher, store IndicatorStore, url string, codes []string, loc *time.Location) *CurrencyScraper {
	if url == "" {
		url = DefaultCurrencyURL
	}
	if len(codes) == 0 {
		codes = DefaultCurrencies
	}
	allowed := make(map[string]bool, len(codes))
	for _, c := range codes {
		allowed[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	if loc == nil {
		loc = time.Local
	}
	return &CurrencyScraper{fetcher: fetcher, store: store, url: url, codes: allowed, loc: loc}
}

// Name returns the scraper name
func (s *CurrencyScraper) Name() string { return "currency" }

// Scrape fetches the bulletin and upserts one indicator per allowed code for the bulletin month
func (s *CurrencyScraper) Scrape(ctx context.Context) (domain.ScrapeResult, error) {
	res, err := s.fetcher.FetchDocument(ctx, s.url)
	if err != nil {
		return domain.ScrapeResult{}, err
	}

	doc, err := s.parse(res.Body)
	if err != nil {
		return domain.ScrapeResult{}, err
	}
	day := s.bulletinDate(doc)

	created, updated, seen := 0, 0, 0
	for _, rate := range doc.Currencies {
		code := strings.ToUpper(strings.TrimSpace(rate.Code))
		if code == "" {
			code = strings.ToUpper(strings.TrimSpace(rate.Kod))
		}
		if !s.codes[code] {
			continue
		}
		seen++

		ind, err := s.indicator(code, rate, day)
		if err != nil {
			lgr.Printf("[WARN] currency: skip %s, %v", code, err)
			continue
		}
		isNew, err := s.store.UpsertIndicator(ctx, ind)
		if err != nil {
			lgr.Printf("[WARN] currency: upsert %s failed, %v", code, err)
			continue
		}
		if isNew {
			created++
			continue
		}
		updated++
	}

	if seen == 0 {
		return domain.ScrapeResult{}, fmt.Errorf("%w: no allowed currencies in bulletin %s", ErrParse, s.url)
	}

	msg := fmt.Sprintf("%d created, %d updated for %s", created, updated, day.Format("2006-01"))
	lgr.Printf("[INFO] currency: %s", msg)
	return domain.ScrapeResult{Success: true, Count: created + updated, Message: msg}, nil
}

func (s *CurrencyScraper) parse(body []byte) (*bulletin, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel
	var doc bulletin
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: currency bulletin: %w", ErrParse, err)
	}
	return &doc, nil
}

// bulletinDate returns the bulletin issue date, today if the document has none
func (s *CurrencyScraper) bulletinDate(doc *bulletin) time.Time {
	if t, err := time.ParseInLocation("01/02/2006", strings.TrimSpace(doc.Date), s.loc); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("02.01.2006", strings.TrimSpace(doc.Tarih), s.loc); err == nil {
		return t
	}
	return time.Now().In(s.loc)
}

func (s *CurrencyScraper) indicator(code string, rate bulletinRate, day time.Time) (*domain.EconomicIndicator, error) {
	buying, err := parseRate(rate.ForexBuying)
	if err != nil {
		return nil, fmt.Errorf("forex buying: %w", err)
	}
	selling, err := parseRate(rate.ForexSelling)
	if err != nil {
		selling = buying
	}
	unit, err := strconv.Atoi(strings.TrimSpace(rate.Unit))
	if err != nil || unit <= 0 {
		unit = 1
	}
	title := strings.TrimSpace(rate.Name)
	if title == "" {
		title = strings.TrimSpace(rate.CurrencyName)
	}
	if title == "" {
		title = code
	}

	return &domain.EconomicIndicator{
		Category:  code,
		Title:     title,
		Slug:      slug.Normalize(fmt.Sprintf("%s %d %02d", code, day.Year(), int(day.Month()))),
		Year:      day.Year(),
		Month:     int(day.Month()),
		Value:     buying,
		SellValue: selling,
		Unit:      unit,
		Source:    "TCMB",
		IsActive:  true,
		UpdatedAt: time.Now(),
	}, nil
}

func parseRate(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, errors.New("empty rate")
	}
	return strconv.ParseFloat(s, 64)
}
