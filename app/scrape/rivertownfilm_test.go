package scrape

import (
	"bytes"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func TestFindScreeningDate_FullGrammar(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	result := findScreeningDate("Join us Friday, March 14 at 7:30 PM for the show", now)
	if result == nil {
		t.Fatal("Expected parsed date, got nil")
	}

	expected := time.Date(2026, time.March, 14, 19, 30, 0, 0, time.Local)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestFindScreeningDate_WithExplicitYear(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	result := findScreeningDate("Screening on March 14, 2027 at 7:00 PM", now)
	if result == nil {
		t.Fatal("Expected parsed date, got nil")
	}
	if result.Year() != 2027 {
		t.Errorf("Expected explicit year 2027, got %d", result.Year())
	}
}

func TestFindScreeningDate_MissingYearRollsForward(t *testing.T) {
	// In November, a "March 14" screening means next March.
	now := time.Date(2026, 11, 1, 0, 0, 0, 0, time.Local)

	result := findScreeningDate("March 14 at 7:30 PM", now)
	if result == nil {
		t.Fatal("Expected parsed date, got nil")
	}
	if result.Year() != 2027 {
		t.Errorf("Expected rollover to 2027, got %d", result.Year())
	}
}

func TestFindScreeningDate_CommaSeparatedTime(t *testing.T) {
	// The site also joins date and time with a bare comma.
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	cases := []struct {
		text     string
		expected time.Time
	}{
		{"Wednesday, January 28, 8:00 pm", time.Date(2026, time.January, 28, 20, 0, 0, 0, time.Local)},
		{"January 28, 8:00 pm", time.Date(2026, time.January, 28, 20, 0, 0, 0, time.Local)},
		{"January 28, 2026, 8:00 pm", time.Date(2026, time.January, 28, 20, 0, 0, 0, time.Local)},
	}

	for _, tc := range cases {
		result := findScreeningDate(tc.text, now)
		if result == nil {
			t.Errorf("Expected parsed date for %q, got nil", tc.text)
			continue
		}
		if !result.Equal(tc.expected) {
			t.Errorf("For %q expected %v, got %v", tc.text, tc.expected, result)
		}
	}
}

func TestFindScreeningDate_NoMatch(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)

	if findScreeningDate("No date in this text at all", now) != nil {
		t.Error("Expected nil when no date grammar matches")
	}
}

const screeningPage = `<html><body>
<section>
	<h2>Film Screening: The Red Balloon</h2>
	<p>A beloved classic returns to the big screen for one night only, presented with a short introduction by a local film historian.</p>
	<p>Friday, March 14 at 7:30 PM</p>
	<img src="https://rivertownfilm.org/red-balloon.jpg">
	<a href="https://rivertownfilm.eventive.org/checkout/123">Tickets $15</a>
</section>
<section>
	<h2>About Our Organization</h2>
	<p>Rivertown Film is a community nonprofit.</p>
</section>
</body></html>`

func TestRivertownParseScreeningSection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(screeningPage)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	sections := screeningSections(doc)
	if len(sections) == 0 {
		t.Fatal("Expected at least one screening section")
	}

	candidate := parseScreeningSection(sections[0], now)
	if candidate == nil {
		t.Fatal("Expected candidate, got nil")
	}

	if candidate.Title != "Film Screening: The Red Balloon" {
		t.Errorf("Unexpected title %q", candidate.Title)
	}
	if candidate.Venue != "The Nyack Center" {
		t.Errorf("Expected pinned venue, got %q", candidate.Venue)
	}
	if candidate.Category != CategoryMovies {
		t.Errorf("Expected MOVIES category, got %s", candidate.Category)
	}
	if candidate.Price != "$15" || candidate.IsFree {
		t.Errorf("Expected $15 from ticket link, got %q free=%v", candidate.Price, candidate.IsFree)
	}
	if candidate.StartDate.Month() != time.March || candidate.StartDate.Day() != 14 {
		t.Errorf("Unexpected start date %v", candidate.StartDate)
	}
	if candidate.ImageURL != "https://rivertownfilm.org/red-balloon.jpg" {
		t.Errorf("Unexpected image URL %q", candidate.ImageURL)
	}
	if candidate.SourceURL != "https://rivertownfilm.eventive.org/checkout/123" {
		t.Errorf("Expected ticket link as source URL, got %q", candidate.SourceURL)
	}
	if candidate.Description == "" {
		t.Error("Expected the first substantial paragraph as description")
	}
}

func TestRivertownFreeScreening(t *testing.T) {
	page := `<html><body><section>
		<h2>Community Film Night</h2>
		<p>Free admission for all residents, with a discussion to follow the screening of this new documentary.</p>
		<p>Saturday, April 4 at 6:00 PM</p>
		<a href="https://rivertownfilm.eventive.org/checkout/456">Reserve</a>
	</section></body></html>`

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	sections := screeningSections(doc)
	if len(sections) == 0 {
		t.Fatal("Expected a screening section")
	}

	candidate := parseScreeningSection(sections[0], now)
	if candidate == nil {
		t.Fatal("Expected candidate, got nil")
	}
	if !candidate.IsFree || candidate.Price != "" {
		t.Errorf("Expected free screening, got price %q free=%v", candidate.Price, candidate.IsFree)
	}
}

func TestRivertownRangePriceKeptWhole(t *testing.T) {
	page := `<html><body><section>
		<h2>Film Screening: Double Feature</h2>
		<p>Two restored prints back to back, with an intermission and live organ accompaniment in between.</p>
		<p>Saturday, May 9 at 7:00 PM</p>
		<a href="https://rivertownfilm.eventive.org/checkout/321">Tickets $15-$30</a>
	</section></body></html>`

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	sections := screeningSections(doc)
	if len(sections) == 0 {
		t.Fatal("Expected a screening section")
	}

	candidate := parseScreeningSection(sections[0], now)
	if candidate == nil {
		t.Fatal("Expected candidate, got nil")
	}
	if candidate.Price != "$15-$30" {
		t.Errorf("Expected full price range, got %q", candidate.Price)
	}
}

func TestRivertownBareFreeOnTicketLink(t *testing.T) {
	page := `<html><body><section>
		<h2>Community Film Night</h2>
		<p>A new documentary about the river towns, followed by a conversation with the filmmakers on stage.</p>
		<p>Saturday, April 4 at 6:00 PM</p>
		<a href="https://rivertownfilm.eventive.org/checkout/654">Free</a>
	</section></body></html>`

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	sections := screeningSections(doc)
	if len(sections) == 0 {
		t.Fatal("Expected a screening section")
	}

	candidate := parseScreeningSection(sections[0], now)
	if candidate == nil {
		t.Fatal("Expected candidate, got nil")
	}
	if !candidate.IsFree || candidate.Price != "" {
		t.Errorf("Expected ticket link marked free, got price %q free=%v", candidate.Price, candidate.IsFree)
	}
}

func TestRivertownSectionWithoutDateSkipped(t *testing.T) {
	page := `<html><body><section>
		<h2>Film Series Announcement</h2>
		<p>Details coming soon.</p>
		<a href="https://rivertownfilm.eventive.org/checkout/789">Tickets</a>
	</section></body></html>`

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	for _, section := range screeningSections(doc) {
		if parseScreeningSection(section, now) != nil {
			t.Error("Expected section without a date to be skipped")
		}
	}
}
