package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	rivertownName    = "Rivertown Film"
	rivertownURL     = "https://rivertownfilm.org/"
	rivertownVenue   = "The Nyack Center"
	rivertownAddress = "58 Depew Ave, Nyack, NY 10960"
)

// rivertownSource scrapes rivertownfilm.org, which publishes no
// structured data. Screenings are located by their eventive.org ticket
// links and the surrounding markup is mined for title, date and price.
type rivertownSource struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func NewRivertownFilmSource(client *http.Client, userAgent string) Source {
	return &rivertownSource{client: client, userAgent: userAgent, timeout: DefaultFetchTimeout}
}

func (s *rivertownSource) Name() string {
	return rivertownName
}

func (s *rivertownSource) Scrape(ctx context.Context) Result {
	data, err := fetch(ctx, s.client, s.userAgent, rivertownURL, s.timeout)
	if err != nil {
		return Result{SourceName: rivertownName, Status: StatusError, ErrorMessage: err.Error()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return Result{
			SourceName:   rivertownName,
			Status:       StatusError,
			ErrorMessage: fmt.Sprintf("parse HTML: %s", err),
		}
	}

	now := time.Now()
	var events []Candidate
	seen := map[string]bool{}

	for _, section := range screeningSections(doc) {
		candidate := parseScreeningSection(section, now)
		if candidate == nil {
			continue
		}
		key := candidate.Title + candidate.StartDate.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		events = append(events, *candidate)
	}

	if len(events) == 0 {
		return Result{
			SourceName:   rivertownName,
			Status:       StatusPartial,
			ErrorMessage: "no screenings found on page",
		}
	}

	return Result{SourceName: rivertownName, Events: events, Status: StatusSuccess}
}

// screeningCues mark headings that belong to a screening block.
var screeningCues = []string{"screening", "film", "presents", "showing"}

// screeningSections collects the page blocks that contain a
// screening: any ancestor section of an eventive.org ticket link,
// plus sections headed by an h2 with a screening cue.
func screeningSections(doc *goquery.Document) []*goquery.Selection {
	var sections []*goquery.Selection
	picked := map[*goquery.Selection]bool{}

	add := func(sel *goquery.Selection) {
		if sel.Length() == 0 {
			return
		}
		node := sel.Get(0)
		for _, existing := range sections {
			if existing.Get(0) == node {
				return
			}
		}
		sections = append(sections, sel)
		picked[sel] = true
	}

	doc.Find(`a[href*="eventive.org"]`).Each(func(_ int, link *goquery.Selection) {
		section := link.Closest("section, article, div.event, div.screening")
		if section.Length() == 0 {
			section = link.ParentsFiltered("div").First()
		}
		add(section)
	})

	doc.Find("h2").Each(func(_ int, heading *goquery.Selection) {
		text := strings.ToLower(heading.Text())
		for _, cue := range screeningCues {
			if strings.Contains(text, cue) {
				add(heading.Closest("section, article, div"))
				return
			}
		}
	})

	return sections
}

// parseScreeningSection mines one page block for a screening. Blocks
// without a recognizable title or future date yield nil.
func parseScreeningSection(section *goquery.Selection, now time.Time) *Candidate {
	title := sectionTitle(section)
	if title == "" {
		return nil
	}

	startDate := findScreeningDate(section.Text(), now)
	if startDate == nil {
		return nil
	}

	price, isFree := findScreeningPrice(section)
	description := sectionDescription(section)

	sourceURL := rivertownURL
	if href, ok := section.Find(`a[href*="eventive.org"]`).First().Attr("href"); ok {
		sourceURL = href
	}

	imageURL := ""
	section.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if src, ok := img.Attr("src"); ok && src != "" {
			imageURL = src
			return false
		}
		if src, ok := img.Attr("data-src"); ok && src != "" {
			imageURL = src
			return false
		}
		return true
	})

	return &Candidate{
		Title:            title,
		Description:      description,
		StartDate:        *startDate,
		Venue:            rivertownVenue,
		Address:          rivertownAddress,
		City:             "Nyack",
		IsNyackProper:    true,
		Category:         CategoryMovies,
		Price:            price,
		IsFree:           isFree,
		IsFamilyFriendly: false,
		ImageURL:         imageURL,
		SourceURL:        sourceURL,
		SourceName:       rivertownName,
	}
}

// sectionTitle prefers h2, then h3, then the first strong element.
func sectionTitle(section *goquery.Selection) string {
	for _, selector := range []string{"h2", "h3", "strong"} {
		text := CleanText(section.Find(selector).First().Text())
		if text != "" && len(text) > 2 {
			return DecodeHTMLEntities(text)
		}
	}
	return ""
}

// sectionDescription takes the first substantial paragraph.
func sectionDescription(section *goquery.Selection) string {
	description := ""
	section.Find("p").EachWithBreak(func(_ int, paragraph *goquery.Selection) bool {
		text := CleanText(paragraph.Text())
		if len(text) > 50 {
			description = Truncate(text, 500)
			return false
		}
		return true
	})
	return description
}

// The site writes dates three ways, all without a timezone, and joins
// the time with either "at" or a bare comma:
//
//	Friday, March 14 at 7:30 PM
//	Wednesday, January 28, 8:00 pm
//	March 14, 2026 at 7:30 PM
const screeningTimeSep = `(?:\s+at\s+|\s*,\s*)`

var screeningDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s+(\w+)\s+(\d{1,2})(?:,\s*(\d{4}))?` + screeningTimeSep + `(\d{1,2}):(\d{2})\s*(AM|PM)`),
	regexp.MustCompile(`(?i)(\w+)\s+(\d{1,2}),\s*(\d{4})` + screeningTimeSep + `(\d{1,2}):(\d{2})\s*(AM|PM)`),
	regexp.MustCompile(`(?i)(\w+)\s+(\d{1,2})()` + screeningTimeSep + `(\d{1,2}):(\d{2})\s*(AM|PM)`),
}

// findScreeningDate tries each date grammar against the block text.
// A date with no year is taken as the current year, rolled forward a
// year when it has already passed.
func findScreeningDate(text string, now time.Time) *time.Time {
	for _, pattern := range screeningDatePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		month := monthNumber(match[1])
		if month == 0 {
			continue
		}
		day, _ := strconv.Atoi(match[2])

		year := now.Year()
		hadYear := false
		if match[3] != "" {
			year, _ = strconv.Atoi(match[3])
			hadYear = true
		}

		hour, _ := strconv.Atoi(match[4])
		minute, _ := strconv.Atoi(match[5])
		ampm := strings.ToUpper(match[6])
		if ampm == "PM" && hour != 12 {
			hour += 12
		} else if ampm == "AM" && hour == 12 {
			hour = 0
		}

		result := time.Date(year, month, day, hour, minute, 0, 0, time.Local)
		if !hadYear && result.Before(now) {
			result = result.AddDate(1, 0, 0)
		}
		if result.Before(now) {
			continue
		}
		return &result
	}
	return nil
}

// screeningPricePattern keeps range prices ("$15-$30") whole.
var screeningPricePattern = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?(?:\s*[-,]\s*\$[\d,]+(?:\.\d{2})?)*`)

// findScreeningPrice reads the price off ticket link text, falling
// back to the whole block. "Free" wins over a dollar amount; the
// ticket link is trusted with a bare "free", the block needs an
// unambiguous marker.
func findScreeningPrice(section *goquery.Selection) (price string, isFree bool) {
	ticketText := section.Find(`a[href*="eventive.org"]`).Text()
	blockText := section.Text()

	if strings.Contains(strings.ToLower(ticketText), "free") {
		return "", true
	}
	lowerBlock := strings.ToLower(blockText)
	if strings.Contains(lowerBlock, "free admission") || strings.Contains(lowerBlock, "free screening") {
		return "", true
	}

	for _, text := range []string{ticketText, blockText} {
		if match := screeningPricePattern.FindString(text); match != "" {
			return match, false
		}
	}
	return "", false
}
