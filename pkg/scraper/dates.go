package scraper

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006 15:04",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

var trMonths = strings.NewReplacer(
	"Ocak", "January", "Şubat", "February", "Mart", "March", "Nisan", "April",
	"Mayıs", "May", "Haziran", "June", "Temmuz", "July", "Ağustos", "August",
	"Eylül", "September", "Ekim", "October", "Kasım", "November", "Aralık", "December",
)

// parseDate parses dates as found on Turkish and English pages, layout first if given.
// Dates without zone are taken in loc. Returns zero time if nothing matched.
func parseDate(s, layout string, loc *time.Location) time.Time {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.Local
	}
	layouts := dateLayouts
	if layout != "" {
		layouts = append([]string{layout}, dateLayouts...)
	}
	for _, candidate := range []string{s, trMonths.Replace(s)} {
		for _, l := range layouts {
			if t, err := time.ParseInLocation(l, candidate, loc); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// splitRange splits "12.03.2025 - 15.03.2025" into start and end parts
func splitRange(s string) (start, end string) {
	for _, sep := range []string{" - ", " – ", " / "} {
		if before, after, ok := strings.Cut(s, sep); ok {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}
	return strings.TrimSpace(s), ""
}
