package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyacktoday/nyack-events/app/database"
	"github.com/nyacktoday/nyack-events/app/scrape"
)

// adminSourceName marks rows created by hand rather than a scraper.
const adminSourceName = "manual"

type eventRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description"`
	StartDate        time.Time  `json:"startDate" binding:"required"`
	EndDate          *time.Time `json:"endDate"`
	Venue            string     `json:"venue" binding:"required"`
	Address          string     `json:"address"`
	City             string     `json:"city"`
	Category         string     `json:"category"`
	Price            string     `json:"price"`
	IsFree           bool       `json:"isFree"`
	IsFamilyFriendly bool       `json:"isFamilyFriendly"`
	ImageURL         string     `json:"imageUrl"`
	SourceURL        string     `json:"sourceUrl"`
}

type eventPatchRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	Venue            *string    `json:"venue"`
	Address          *string    `json:"address"`
	City             *string    `json:"city"`
	Category         *string    `json:"category"`
	Price            *string    `json:"price"`
	IsFree           *bool      `json:"isFree"`
	IsFamilyFriendly *bool      `json:"isFamilyFriendly"`
	ImageURL         *string    `json:"imageUrl"`
	IsHidden         *bool      `json:"isHidden"`
}

type activityRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	Venue            string `json:"venue" binding:"required"`
	Address          string `json:"address"`
	City             string `json:"city"`
	Category         string `json:"category"`
	Price            string `json:"price"`
	IsFree           bool   `json:"isFree"`
	IsFamilyFriendly bool   `json:"isFamilyFriendly"`
	WebsiteURL       string `json:"websiteUrl"`
	ImageURL         string `json:"imageUrl"`
	Hours            string `json:"hours"`
	IsActive         *bool  `json:"isActive"`
}

func (h *Handler) AdminListEvents(c *gin.Context) {
	filter := database.EventFilter{
		IncludeHidden: true,
		Limit:         defaultPageSize,
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= maxPageSize {
			filter.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	events, err := h.eventRepo.ListEvents(filter)
	if err != nil {
		slog.Error("Database error", "operation", "admin_list_events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.eventRepo.CountEvents(filter)
	if err != nil {
		slog.Error("Database error", "operation", "admin_count_events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	responses := make([]eventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toEventResponse(event))
	}

	c.JSON(http.StatusOK, gin.H{
		"events":  responses,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
		"hasMore": filter.Offset+len(events) < total,
	})
}

func (h *Handler) AdminGetEvent(c *gin.Context) {
	event, err := h.eventRepo.GetEventByID(c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "admin_get_event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(*event))
}

func (h *Handler) AdminCreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.Category
	if category == "" {
		category = string(scrape.CategoryOther)
	} else if !scrape.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category: " + category})
		return
	}

	city := req.City
	if city == "" {
		city = "Nyack"
	}

	event := database.Event{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Venue:            req.Venue,
		Address:          req.Address,
		City:             city,
		IsNyackProper:    scrape.IsNyackProper(city),
		Category:         category,
		Price:            req.Price,
		IsFree:           req.IsFree,
		IsFamilyFriendly: req.IsFamilyFriendly,
		ImageURL:         req.ImageURL,
		SourceURL:        req.SourceURL,
		SourceName:       adminSourceName,
		SourceHash:       scrape.GenerateEventHash(req.Title, req.Venue, req.StartDate),
	}

	if err := h.eventRepo.CreateEvent(event); err != nil {
		slog.Error("Database error", "operation", "admin_create_event", "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create event (possible duplicate)"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *Handler) AdminPatchEvent(c *gin.Context) {
	id := c.Param("id")

	var req eventPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Category != nil && !scrape.IsValidCategory(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category: " + *req.Category})
		return
	}

	existing, err := h.eventRepo.GetEventByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "admin_patch_event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	patch := database.EventPatch{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Venue:            req.Venue,
		Address:          req.Address,
		City:             req.City,
		Category:         req.Category,
		Price:            req.Price,
		IsFree:           req.IsFree,
		IsFamilyFriendly: req.IsFamilyFriendly,
		ImageURL:         req.ImageURL,
		IsHidden:         req.IsHidden,
	}

	if err := h.eventRepo.PatchEvent(id, patch); err != nil {
		slog.Error("Database error", "operation", "admin_patch_event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	updated, err := h.eventRepo.GetEventByID(id)
	if err != nil || updated == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, toEventResponse(*updated))
}

func (h *Handler) AdminDeleteEvent(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.eventRepo.GetEventByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "admin_delete_event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := h.eventRepo.DeleteEvent(id); err != nil {
		slog.Error("Database error", "operation", "admin_delete_event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AdminListActivities(c *gin.Context) {
	activities, err := h.activityRepo.ListActivities(false)
	if err != nil {
		slog.Error("Database error", "operation", "admin_list_activities", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	responses := make([]activityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, toActivityResponse(activity))
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": responses,
		"total":      len(responses),
	})
}

func (h *Handler) AdminCreateActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := req.Category
	if category == "" {
		category = string(scrape.CategoryOther)
	} else if !scrape.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category: " + category})
		return
	}

	city := req.City
	if city == "" {
		city = "Nyack"
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	activity := database.Activity{
		Title:            req.Title,
		Description:      req.Description,
		Venue:            req.Venue,
		Address:          req.Address,
		City:             city,
		IsNyackProper:    scrape.IsNyackProper(city),
		Category:         category,
		Price:            req.Price,
		IsFree:           req.IsFree,
		IsFamilyFriendly: req.IsFamilyFriendly,
		WebsiteURL:       req.WebsiteURL,
		ImageURL:         req.ImageURL,
		Hours:            req.Hours,
		IsActive:         isActive,
	}

	id, err := h.activityRepo.CreateActivity(activity)
	if err != nil {
		slog.Error("Database error", "operation", "admin_create_activity", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *Handler) AdminUpdateActivity(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.activityRepo.GetActivityByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "admin_update_activity", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Category != "" && !scrape.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category: " + req.Category})
		return
	}

	updated := *existing
	updated.Title = req.Title
	updated.Description = req.Description
	updated.Venue = req.Venue
	updated.Address = req.Address
	if req.City != "" {
		updated.City = req.City
		updated.IsNyackProper = scrape.IsNyackProper(req.City)
	}
	if req.Category != "" {
		updated.Category = req.Category
	}
	updated.Price = req.Price
	updated.IsFree = req.IsFree
	updated.IsFamilyFriendly = req.IsFamilyFriendly
	updated.WebsiteURL = req.WebsiteURL
	updated.ImageURL = req.ImageURL
	updated.Hours = req.Hours
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}

	if err := h.activityRepo.UpdateActivity(updated); err != nil {
		slog.Error("Database error", "operation", "admin_update_activity", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toActivityResponse(updated))
}

func (h *Handler) AdminDeleteActivity(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.activityRepo.GetActivityByID(id)
	if err != nil {
		slog.Error("Database error", "operation", "admin_delete_activity", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	if err := h.activityRepo.DeleteActivity(id); err != nil {
		slog.Error("Database error", "operation", "admin_delete_activity", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) AdminGetScraperLogs(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	logs, err := h.logRepo.GetRecentLogs(limit)
	if err != nil {
		slog.Error("Database error", "operation", "admin_get_scraper_logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	entries := make([]map[string]interface{}, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, map[string]interface{}{
			"id":            log.ID,
			"source_name":   log.SourceName,
			"status":        log.Status,
			"events_found":  log.EventsFound,
			"events_added":  log.EventsAdded,
			"error_message": log.ErrorMessage,
			"run_at":        log.RunAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  entries,
		"total": len(entries),
	})
}

func (h *Handler) AdminGetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	all, errAll := h.eventRepo.CountEvents(database.EventFilter{IncludeHidden: true})
	visible, errVisible := h.eventRepo.CountEvents(database.EventFilter{})
	if errAll == nil {
		stats["events"] = all
	}
	if errAll == nil && errVisible == nil {
		stats["hidden_events"] = all - visible
	}

	now := time.Now()
	if upcoming, err := h.eventRepo.CountEvents(database.EventFilter{StartAfter: &now}); err == nil {
		stats["upcoming_events"] = upcoming
	}

	if activities, err := h.activityRepo.ListActivities(false); err == nil {
		stats["activities"] = len(activities)
	}

	if lastRuns, err := h.logRepo.GetLastRunBySource(); err == nil {
		sources := make(map[string]interface{}, len(lastRuns))
		for name, log := range lastRuns {
			sources[name] = map[string]interface{}{
				"status":       log.Status,
				"events_found": log.EventsFound,
				"events_added": log.EventsAdded,
				"run_at":       log.RunAt.Format(time.RFC3339),
			}
		}
		stats["sources"] = sources
	}

	c.JSON(http.StatusOK, stats)
}
