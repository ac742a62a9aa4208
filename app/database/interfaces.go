package database

import (
	"time"
)

// EventUpdate carries the mutable fields refreshed when the same
// source sees an already-known fingerprint again. Identifier, start
// date, venue, city and category are preserved from the first sighting.
type EventUpdate struct {
	Title            string
	Description      string
	EndDate          *time.Time
	Address          string
	Price            string
	IsFree           bool
	IsFamilyFriendly bool
	ImageURL         string
	SourceURL        string
}

// EventPatch is a partial admin update; nil fields are left unchanged.
type EventPatch struct {
	Title            *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	Venue            *string
	Address          *string
	City             *string
	Category         *string
	Price            *string
	IsFree           *bool
	IsFamilyFriendly *bool
	ImageURL         *string
	IsHidden         *bool
}

// EventFilter describes the public listing query surface.
type EventFilter struct {
	StartAfter         *time.Time
	StartBefore        *time.Time
	Category           string
	FreeOnly           bool
	FamilyFriendlyOnly bool
	NyackOnly          bool
	NearbyOnly         bool
	IncludeHidden      bool
	Limit              int
	Offset             int
}

type EventRepository interface {
	GetBySourceHash(sourceHash string) (*Event, error)
	CreateEvent(event Event) error
	UpdateFromSource(sourceHash string, update EventUpdate) error
	DeleteStartedBefore(cutoff time.Time) (int, error)

	GetEventByID(id string) (*Event, error)
	ListEvents(filter EventFilter) ([]Event, error)
	CountEvents(filter EventFilter) (int, error)
	PatchEvent(id string, patch EventPatch) error
	DeleteEvent(id string) error
}

type ActivityRepository interface {
	ListActivities(activeOnly bool) ([]Activity, error)
	GetActivityByID(id string) (*Activity, error)
	CreateActivity(activity Activity) (string, error)
	UpdateActivity(activity Activity) error
	DeleteActivity(id string) error
}

type ScraperLogRepository interface {
	CreateLog(log ScraperLog) error
	GetRecentLogs(limit int) ([]ScraperLog, error)
	GetLastRunBySource() (map[string]ScraperLog, error)
}
