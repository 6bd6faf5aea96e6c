package domain

import "time"

// Collection names a content collection in the store
type Collection string

// content collections filled by scrapers or read by the notification dispatcher
const (
	CollectionNews        Collection = "news"
	CollectionTraining    Collection = "trainings"
	CollectionFair        Collection = "fairs"
	CollectionProject     Collection = "projects"
	CollectionReport      Collection = "reports"
	CollectionLegislation Collection = "legislations"
	CollectionHoliday     Collection = "holidays"
)

// Collections lists all content collections in a stable order
var Collections = []Collection{
	CollectionNews, CollectionTraining, CollectionFair, CollectionProject,
	CollectionReport, CollectionLegislation, CollectionHoliday,
}

// Valid reports whether c is a known collection
func (c Collection) Valid() bool {
	for _, known := range Collections {
		if c == known {
			return true
		}
	}
	return false
}

// ContentRecord is a normalized record of any content collection.
// StartDate carries the collection's primary date: start date for fairs and projects,
// event date for trainings, the day itself for holidays and the publish date otherwise.
type ContentRecord struct {
	ID          int64
	Collection  Collection
	Title       string
	Slug        string
	Description string
	Content     string
	Source      string
	SourceURL   string
	Image       string
	Category    string
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
	IsActive    bool
	CreatedAt   time.Time
}

// EconomicIndicator is a monthly value keyed by (Category, Year, Month).
// For currency rates Category is the ISO code and Value/SellValue are forex buying/selling.
type EconomicIndicator struct {
	ID        int64
	Category  string
	Title     string
	Slug      string
	Year      int
	Month     int
	Value     float64
	SellValue float64
	Unit      int
	Source    string
	IsActive  bool
	UpdatedAt time.Time
}
