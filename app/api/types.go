package api

import (
	"time"

	"github.com/nyacktoday/nyack-events/app/database"
	"github.com/nyacktoday/nyack-events/app/scrape"
)

type Handler struct {
	eventRepo    database.EventRepository
	activityRepo database.ActivityRepository
	logRepo      database.ScraperLogRepository
	orchestrator *scrape.Orchestrator
}

// eventResponse is the public JSON shape of an event.
type eventResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Venue            string     `json:"venue"`
	Address          string     `json:"address,omitempty"`
	City             string     `json:"city"`
	IsNyackProper    bool       `json:"isNyackProper"`
	Category         string     `json:"category"`
	Price            string     `json:"price,omitempty"`
	IsFree           bool       `json:"isFree"`
	IsFamilyFriendly bool       `json:"isFamilyFriendly"`
	ImageURL         string     `json:"imageUrl,omitempty"`
	SourceURL        string     `json:"sourceUrl,omitempty"`
	SourceName       string     `json:"sourceName"`
	IsHidden         bool       `json:"isHidden,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type activityResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Venue            string    `json:"venue"`
	Address          string    `json:"address,omitempty"`
	City             string    `json:"city"`
	IsNyackProper    bool      `json:"isNyackProper"`
	Category         string    `json:"category"`
	Price            string    `json:"price,omitempty"`
	IsFree           bool      `json:"isFree"`
	IsFamilyFriendly bool      `json:"isFamilyFriendly"`
	WebsiteURL       string    `json:"websiteUrl,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	Hours            string    `json:"hours,omitempty"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toEventResponse(event database.Event) eventResponse {
	return eventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Description:      event.Description,
		StartDate:        event.StartDate,
		EndDate:          event.EndDate,
		Venue:            event.Venue,
		Address:          event.Address,
		City:             event.City,
		IsNyackProper:    event.IsNyackProper,
		Category:         event.Category,
		Price:            event.Price,
		IsFree:           event.IsFree,
		IsFamilyFriendly: event.IsFamilyFriendly,
		ImageURL:         event.ImageURL,
		SourceURL:        event.SourceURL,
		SourceName:       event.SourceName,
		IsHidden:         event.IsHidden,
		CreatedAt:        event.CreatedAt,
		UpdatedAt:        event.UpdatedAt,
	}
}

func toActivityResponse(activity database.Activity) activityResponse {
	return activityResponse{
		ID:               activity.ID,
		Title:            activity.Title,
		Description:      activity.Description,
		Venue:            activity.Venue,
		Address:          activity.Address,
		City:             activity.City,
		IsNyackProper:    activity.IsNyackProper,
		Category:         activity.Category,
		Price:            activity.Price,
		IsFree:           activity.IsFree,
		IsFamilyFriendly: activity.IsFamilyFriendly,
		WebsiteURL:       activity.WebsiteURL,
		ImageURL:         activity.ImageURL,
		Hours:            activity.Hours,
		IsActive:         activity.IsActive,
		CreatedAt:        activity.CreatedAt,
		UpdatedAt:        activity.UpdatedAt,
	}
}

func NewHandler(eventRepo database.EventRepository, activityRepo database.ActivityRepository,
	logRepo database.ScraperLogRepository, orchestrator *scrape.Orchestrator) *Handler {
	return &Handler{
		eventRepo:    eventRepo,
		activityRepo: activityRepo,
		logRepo:      logRepo,
		orchestrator: orchestrator,
	}
}
