package database

import (
	"time"
)

// Event is a persisted, deduplicated event row. SourceHash is the
// fingerprint natural key; IsHidden is the admin visibility flag.
type Event struct {
	ID               string
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          *time.Time
	Venue            string
	Address          string
	City             string
	IsNyackProper    bool
	Category         string
	Price            string // empty means no price (free or unknown)
	IsFree           bool
	IsFamilyFriendly bool
	SourceURL        string
	SourceName       string
	ImageURL         string
	SourceHash       string
	IsHidden         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Activity is a manually curated "always available" attraction.
// Unlike events it has no dates, only opening hours.
type Activity struct {
	ID               string
	Title            string
	Description      string
	Venue            string
	Address          string
	City             string
	IsNyackProper    bool
	Category         string
	Price            string
	IsFree           bool
	IsFamilyFriendly bool
	WebsiteURL       string
	ImageURL         string
	Hours            string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ScraperLog is an append-only record of one extractor invocation.
type ScraperLog struct {
	ID           string
	SourceName   string
	Status       string // success, partial, error
	EventsFound  int
	EventsAdded  int
	ErrorMessage string
	RunAt        time.Time
}
