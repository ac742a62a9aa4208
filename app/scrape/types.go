package scrape

import (
	"context"
	"time"
)

// Category is the fixed event categorization enumeration. Values match
// the column values stored in the events table.
type Category string

const (
	CategoryMusic               Category = "MUSIC"
	CategoryComedy              Category = "COMEDY"
	CategoryMovies              Category = "MOVIES"
	CategoryTheater             Category = "THEATER"
	CategoryFamilyKids          Category = "FAMILY_KIDS"
	CategoryFoodDrink           Category = "FOOD_DRINK"
	CategorySportsRecreation    Category = "SPORTS_RECREATION"
	CategoryCommunityGovernment Category = "COMMUNITY_GOVERNMENT"
	CategoryArtGalleries        Category = "ART_GALLERIES"
	CategoryClassesWorkshops    Category = "CLASSES_WORKSHOPS"
	CategoryOther               Category = "OTHER"
)

// Categories lists every category in evaluation order. Keyword
// inference checks them in this order, first match wins.
var Categories = []Category{
	CategoryMusic,
	CategoryComedy,
	CategoryMovies,
	CategoryTheater,
	CategoryFamilyKids,
	CategoryFoodDrink,
	CategorySportsRecreation,
	CategoryCommunityGovernment,
	CategoryArtGalleries,
	CategoryClassesWorkshops,
	CategoryOther,
}

// IsValidCategory reports whether s is a known category value.
func IsValidCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Status classifies the outcome of one source run.
type Status string

const (
	// StatusSuccess means the fetch succeeded and the expected
	// structured data was found.
	StatusSuccess Status = "success"
	// StatusPartial means the fetch succeeded but no parseable events
	// were found, or multiple sub-fetches had mixed success. Events
	// collected before a partial failure are still returned.
	StatusPartial Status = "partial"
	// StatusError means the fetch failed entirely or an unexpected
	// error occurred.
	StatusError Status = "error"
)

// Candidate is an event produced by a source, not yet persisted.
// Sources only emit candidates that pass validity checks: non-empty
// title, a parseable start date that is not in the past, and a city
// inside the coverage area.
type Candidate struct {
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          *time.Time
	Venue            string
	Address          string
	City             string
	IsNyackProper    bool
	Category         Category
	Price            string // display text like "$15"; empty when free or unknown
	IsFree           bool
	IsFamilyFriendly bool
	SourceURL        string
	SourceName       string
	ImageURL         string
}

// Result is what one source run produces.
type Result struct {
	SourceName   string
	Events       []Candidate
	Status       Status
	ErrorMessage string
}

// Source is implemented by each external event source. Each source
// fetches its own resource, applies its extraction strategy, and maps
// into Candidates. A failed fetch is reported through Result.Status,
// not an error return.
type Source interface {
	Name() string
	Scrape(ctx context.Context) Result
}
