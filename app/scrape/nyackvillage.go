package scrape

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	villageName    = "Village of Nyack"
	villageCity    = "Nyack"
	villageAddress = "9 N Broadway, Nyack, NY 10960" // Village Hall
)

// villageFeeds are the municipal calendar RSS feeds. Each one can fail
// independently; mixed success yields a partial run.
var villageFeeds = []struct {
	url  string
	name string
}{
	{"https://www.nyack.gov/rss/calendar/577/", "Village Events"},
	{"https://www.nyack.gov/rss/calendar/578/", "Village Board of Trustees"},
}

// villageSource scrapes the Village of Nyack government calendar. The
// feeds carry event dates in a vendor dates_times namespace rather
// than pubDate.
type villageSource struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	parser    *gofeed.Parser
}

func NewVillageSource(client *http.Client, userAgent string) Source {
	return &villageSource{
		client:    client,
		userAgent: userAgent,
		timeout:   DefaultFetchTimeout,
		parser:    gofeed.NewParser(),
	}
}

func (s *villageSource) Name() string {
	return villageName
}

func (s *villageSource) Scrape(ctx context.Context) Result {
	now := time.Now()
	var events []Candidate
	var errors []string

	for _, feed := range villageFeeds {
		data, err := fetch(ctx, s.client, s.userAgent, feed.url, s.timeout)
		if err != nil {
			errors = append(errors, feed.name+": "+err.Error())
			continue
		}

		parsed, err := s.parser.Parse(bytes.NewReader(data))
		if err != nil {
			errors = append(errors, feed.name+": "+err.Error())
			continue
		}

		for _, item := range parsed.Items {
			candidate := parseVillageItem(item, now)
			if candidate != nil {
				events = append(events, *candidate)
			}
		}
	}

	if len(events) == 0 && len(errors) > 0 {
		return Result{
			SourceName:   villageName,
			Status:       StatusError,
			ErrorMessage: strings.Join(errors, "; "),
		}
	}

	status := StatusSuccess
	if len(errors) > 0 {
		status = StatusPartial
	}

	return Result{
		SourceName:   villageName,
		Events:       events,
		Status:       status,
		ErrorMessage: strings.Join(errors, "; "),
	}
}

// extensionValue reads one vendor-namespaced element from a feed item.
func extensionValue(item *gofeed.Item, namespace, field string) string {
	values, ok := item.Extensions[namespace][field]
	if !ok || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

// parseVillageItem maps one RSS item into a Candidate. Administrative
// noise (closures, trash collection) and past or undated items yield
// nil.
func parseVillageItem(item *gofeed.Item, now time.Time) *Candidate {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return nil
	}

	startDateStr := extensionValue(item, "dates_times", "start_date")
	startTimeStr := extensionValue(item, "dates_times", "start_time")
	endTimeStr := extensionValue(item, "dates_times", "end_time")

	if startDateStr == "" {
		return nil
	}

	startDate := parseVillageDateTime(startDateStr, startTimeStr)
	if startDate == nil {
		return nil
	}
	if startDate.Before(now) {
		return nil
	}

	var endDate *time.Time
	if endTimeStr != "" {
		if parsed := parseVillageDateTime(startDateStr, endTimeStr); parsed != nil && !parsed.Before(*startDate) {
			endDate = parsed
		}
	}

	description := CleanText(item.Description)
	if len(description) > 500 {
		description = Truncate(description, 500)
	}

	lowerTitle := strings.ToLower(title)
	lowerDescription := strings.ToLower(description)

	// Holiday closures and bulk trash notices are calendar noise, not
	// events anyone attends.
	if strings.Contains(lowerTitle, "closed") || strings.Contains(lowerTitle, "closure") {
		return nil
	}
	if strings.Contains(lowerTitle, "holiday") && strings.Contains(lowerDescription, "closed") {
		return nil
	}
	if strings.Contains(lowerTitle, "bulk trash") || strings.Contains(lowerTitle, "collection") {
		return nil
	}

	venue, address := villageVenue(lowerTitle)

	sourceURL := strings.TrimSpace(item.Link)
	if sourceURL == "" {
		sourceURL = "https://www.nyack.gov/calendar"
	}

	return &Candidate{
		Title:            DecodeHTMLEntities(title),
		Description:      description,
		StartDate:        *startDate,
		EndDate:          endDate,
		Venue:            venue,
		Address:          address,
		City:             villageCity,
		IsNyackProper:    true,
		Category:         CategoryCommunityGovernment,
		IsFree:           true, // government events are free
		IsFamilyFriendly: isVillageFamilyEvent(lowerTitle),
		SourceURL:        sourceURL,
		SourceName:       villageName,
	}
}

// villageVenue picks a venue from title keywords. Most municipal
// items happen at Village Hall, but the recurring town events have
// known locations.
func villageVenue(lowerTitle string) (venue, address string) {
	switch {
	// Meetings take precedence: a "Penguin Plunge Planning Meeting"
	// happens at Village Hall, not the beach.
	case strings.Contains(lowerTitle, "board") || strings.Contains(lowerTitle, "trustees") ||
		strings.Contains(lowerTitle, "meeting"):
		return "Nyack Village Hall", villageAddress
	case strings.Contains(lowerTitle, "street fair"):
		return "Main Street", "Main Street, Nyack, NY 10960"
	case strings.Contains(lowerTitle, "halloween") || strings.Contains(lowerTitle, "parade"):
		return "Downtown Nyack", "Main Street, Nyack, NY 10960"
	case strings.Contains(lowerTitle, "penguin") || strings.Contains(lowerTitle, "plunge"):
		return "Memorial Park Beach", "Memorial Park, Nyack, NY 10960"
	default:
		return "Village of Nyack", villageAddress
	}
}

var villageFamilyKeywords = []string{
	"parade",
	"halloween",
	"street fair",
	"penguin plunge",
	"festival",
	"celebration",
}

func isVillageFamilyEvent(lowerTitle string) bool {
	for _, keyword := range villageFamilyKeywords {
		if strings.Contains(lowerTitle, keyword) {
			return true
		}
	}
	return false
}

var (
	weekdayPrefixPattern = regexp.MustCompile(`(?i)^(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s*`)
	villageDatePattern   = regexp.MustCompile(`(\w+)\s+(\d{1,2}),?\s*(\d{4})`)
	villageTimePattern   = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// parseVillageDateTime combines the feed's date string ("Thursday,
// January 22, 2026" or "January 22, 2026") with an optional time
// string ("7:00 PM") into a local timestamp. Missing time means
// midnight.
func parseVillageDateTime(dateStr, timeStr string) *time.Time {
	clean := weekdayPrefixPattern.ReplaceAllString(dateStr, "")

	dateMatch := villageDatePattern.FindStringSubmatch(clean)
	if dateMatch == nil {
		return nil
	}

	month := monthNumber(dateMatch[1])
	if month == 0 {
		return nil
	}
	day, _ := strconv.Atoi(dateMatch[2])
	year, _ := strconv.Atoi(dateMatch[3])

	hour, minute := 0, 0
	if timeStr != "" {
		if timeMatch := villageTimePattern.FindStringSubmatch(timeStr); timeMatch != nil {
			hour, _ = strconv.Atoi(timeMatch[1])
			minute, _ = strconv.Atoi(timeMatch[2])
			ampm := strings.ToUpper(timeMatch[3])

			if ampm == "PM" && hour != 12 {
				hour += 12
			} else if ampm == "AM" && hour == 12 {
				hour = 0
			}
		}
	}

	result := time.Date(year, month, day, hour, minute, 0, 0, time.Local)
	return &result
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// monthNumber resolves a month name or abbreviation; zero means unknown.
func monthNumber(name string) time.Month {
	return monthsByName[strings.ToLower(name)]
}
