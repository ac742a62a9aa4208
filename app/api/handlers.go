package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nyacktoday/nyack-events/app/database"
	"github.com/nyacktoday/nyack-events/app/scrape"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

func (h *Handler) ListEvents(c *gin.Context) {
	filter, err := parseEventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.eventRepo.ListEvents(*filter)
	if err != nil {
		slog.Error("Database error", "operation", "list_events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.eventRepo.CountEvents(*filter)
	if err != nil {
		slog.Error("Database error", "operation", "count_events", "error", err)
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

func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.eventRepo.GetEventByID(c.Param("id"))
	if err != nil {
		slog.Error("Database error", "operation", "get_event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if event == nil || event.IsHidden {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(*event))
}

func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.activityRepo.ListActivities(true)
	if err != nil {
		slog.Error("Database error", "operation", "list_activities", "error", err)
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

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	status := http.StatusOK
	if _, err := h.eventRepo.CountEvents(allEventsFilter()); err != nil {
		health["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		health["database"] = "ok"
	}

	c.JSON(status, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if total, err := h.eventRepo.CountEvents(allEventsFilter()); err == nil {
		stats["events"] = total
	}

	now := time.Now()
	if upcoming, err := h.eventRepo.CountEvents(upcomingFilter(now)); err == nil {
		stats["upcoming_events"] = upcoming
	}

	if activities, err := h.activityRepo.ListActivities(true); err == nil {
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

// TriggerScrape runs the pipeline synchronously so the caller gets
// the run summary back. `source` restricts the run to one scraper;
// `cleanup=true` runs retention cleanup instead.
func (h *Handler) TriggerScrape(c *gin.Context) {
	if c.Query("cleanup") == "true" {
		removed, err := h.orchestrator.Cleanup(c.Request.Context())
		if err != nil {
			slog.Error("Cleanup failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"removed": removed,
		})
		return
	}

	sourceName := c.Query("source")
	if sourceName != "" {
		summary, err := h.orchestrator.RunOne(c.Request.Context(), sourceName)
		if err != nil {
			if errors.Is(err, scrape.ErrSourceNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"error":   "Source not found",
					"source":  sourceName,
					"sources": h.orchestrator.SourceNames(),
				})
				return
			}
			slog.Error("Scrape run failed", "source", sourceName, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Scrape run failed"})
			return
		}
		c.JSON(http.StatusOK, summary)
		return
	}

	c.JSON(http.StatusOK, h.orchestrator.RunAll(c.Request.Context()))
}

func (h *Handler) ListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources": h.orchestrator.SourceNames(),
	})
}

// parseEventFilter reads the public listing query parameters. The
// default window is future events only.
func parseEventFilter(c *gin.Context) (*database.EventFilter, error) {
	filter := &database.EventFilter{
		Limit: defaultPageSize,
	}

	now := time.Now()

	if dateRange := c.Query("date"); dateRange != "" {
		start, end, err := ResolveDateRange(dateRange, now)
		if err != nil {
			return nil, err
		}
		filter.StartAfter = &start
		filter.StartBefore = &end
	} else {
		filter.StartAfter = &now
	}

	if category := c.Query("category"); category != "" {
		if !scrape.IsValidCategory(category) {
			return nil, errInvalidCategory(category)
		}
		filter.Category = category
	}

	filter.FreeOnly = c.Query("free") == "true"
	filter.FamilyFriendlyOnly = c.Query("familyFriendly") == "true"
	filter.NyackOnly = c.Query("nyackOnly") == "true"
	filter.NearbyOnly = c.Query("nearbyOnly") == "true"

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return nil, errors.New("limit must be a positive integer")
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
		filter.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return nil, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}

func errInvalidCategory(category string) error {
	return errors.New("invalid category: " + category)
}

func allEventsFilter() database.EventFilter {
	return database.EventFilter{IncludeHidden: true, Limit: 1}
}

func upcomingFilter(now time.Time) database.EventFilter {
	return database.EventFilter{StartAfter: &now, Limit: 1}
}
