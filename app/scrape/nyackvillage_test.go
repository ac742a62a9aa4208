package scrape

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

func villageItem(title, startDate, startTime string) *gofeed.Item {
	return &gofeed.Item{
		Title:       title,
		Link:        "https://www.nyack.gov/calendar/event/123",
		Description: "Details on the village website.",
		Extensions: ext.Extensions{
			"dates_times": {
				"start_date": []ext.Extension{{Value: startDate}},
				"start_time": []ext.Extension{{Value: startTime}},
			},
		},
	}
}

func TestParseVillageDateTime(t *testing.T) {
	result := parseVillageDateTime("Thursday, January 22, 2026", "7:00 PM")
	if result == nil {
		t.Fatal("Expected parsed date, got nil")
	}

	expected := time.Date(2026, time.January, 22, 19, 0, 0, 0, time.Local)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestParseVillageDateTime_NoWeekdayPrefix(t *testing.T) {
	result := parseVillageDateTime("March 5, 2026", "12:00 PM")
	if result == nil {
		t.Fatal("Expected parsed date, got nil")
	}
	if result.Hour() != 12 {
		t.Errorf("Expected noon, got hour %d", result.Hour())
	}
}

func TestParseVillageDateTime_MidnightEdges(t *testing.T) {
	noon := parseVillageDateTime("January 22, 2026", "12:00 AM")
	if noon == nil || noon.Hour() != 0 {
		t.Errorf("Expected 12:00 AM to map to hour 0, got %v", noon)
	}

	missing := parseVillageDateTime("January 22, 2026", "")
	if missing == nil || missing.Hour() != 0 {
		t.Errorf("Expected missing time to default to midnight, got %v", missing)
	}
}

func TestParseVillageDateTime_Unparseable(t *testing.T) {
	if parseVillageDateTime("sometime soon", "7:00 PM") != nil {
		t.Error("Expected nil for unparseable date")
	}
	if parseVillageDateTime("Fakemonth 22, 2026", "7:00 PM") != nil {
		t.Error("Expected nil for unknown month name")
	}
}

func TestParseVillageItem_BoardMeeting(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	item := villageItem("Village Board of Trustees Meeting", "Thursday, January 22, 2026", "7:00 PM")

	candidate := parseVillageItem(item, now)
	if candidate == nil {
		t.Fatal("Expected candidate, got nil")
	}

	if candidate.Venue != "Nyack Village Hall" {
		t.Errorf("Expected Village Hall venue, got %q", candidate.Venue)
	}
	if candidate.Category != CategoryCommunityGovernment {
		t.Errorf("Expected COMMUNITY_GOVERNMENT, got %s", candidate.Category)
	}
	if !candidate.IsFree {
		t.Error("Expected village events to be free")
	}
	if !candidate.IsNyackProper {
		t.Error("Expected village events to be Nyack proper")
	}
	if candidate.IsFamilyFriendly {
		t.Error("Expected a board meeting to not be flagged family friendly")
	}
}

func TestParseVillageItem_VenueHeuristics(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		title  string
		venue  string
		family bool
	}{
		{"Nyack Street Fair", "Main Street", true},
		{"Halloween Parade", "Downtown Nyack", true},
		{"Penguin Plunge", "Memorial Park Beach", true},
		{"Penguin Plunge Planning Meeting", "Nyack Village Hall", true},
		{"Summer Concert Series", "Village of Nyack", false},
	}

	for _, tt := range tests {
		item := villageItem(tt.title, "Saturday, June 6, 2026", "10:00 AM")
		candidate := parseVillageItem(item, now)
		if candidate == nil {
			t.Fatalf("Expected candidate for %q, got nil", tt.title)
		}
		if candidate.Venue != tt.venue {
			t.Errorf("Title %q: expected venue %q, got %q", tt.title, tt.venue, candidate.Venue)
		}
		if candidate.IsFamilyFriendly != tt.family {
			t.Errorf("Title %q: expected family friendly %v, got %v", tt.title, tt.family, candidate.IsFamilyFriendly)
		}
	}
}

func TestParseVillageItem_NoiseExcluded(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	noise := []string{
		"Village Hall Closed",
		"Street Closure on Main",
		"Bulk Trash Pickup",
		"Leaf Collection Schedule",
	}

	for _, title := range noise {
		item := villageItem(title, "Thursday, January 22, 2026", "9:00 AM")
		if parseVillageItem(item, now) != nil {
			t.Errorf("Expected %q to be excluded as noise", title)
		}
	}
}

func TestParseVillageItem_PastAndUndatedSkipped(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)

	past := villageItem("Spring Festival", "Saturday, March 7, 2026", "10:00 AM")
	if parseVillageItem(past, now) != nil {
		t.Error("Expected past event to be skipped")
	}

	undated := &gofeed.Item{Title: "Mystery Meeting"}
	if parseVillageItem(undated, now) != nil {
		t.Error("Expected item without date extension to be skipped")
	}
}

func TestParseVillageItem_EndTimeSameDay(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	item := villageItem("Village Board of Trustees Meeting", "Thursday, January 22, 2026", "7:00 PM")
	item.Extensions["dates_times"]["end_time"] = []ext.Extension{{Value: "9:00 PM"}}

	candidate := parseVillageItem(item, now)
	if candidate == nil {
		t.Fatal("Expected candidate, got nil")
	}
	if candidate.EndDate == nil {
		t.Fatal("Expected end date to be set")
	}
	if candidate.EndDate.Hour() != 21 {
		t.Errorf("Expected end at 21:00, got %d:00", candidate.EndDate.Hour())
	}
	if candidate.EndDate.Day() != candidate.StartDate.Day() {
		t.Error("Expected end date on the same day as start")
	}
}
