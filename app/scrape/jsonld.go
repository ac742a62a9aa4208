package scrape

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// StringOrList absorbs schema.org fields that are sometimes a single
// string and sometimes an array (image is the usual offender).
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrList{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = StringOrList(list)
		return nil
	}

	// Unexpected shape, treat as absent
	*s = nil
	return nil
}

func (s StringOrList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// JSONLDOffer is one schema.org Offer. Price arrives as a JSON string
// or number depending on the publisher.
type JSONLDOffer struct {
	Price any `json:"price"`
}

// OfferList absorbs a single offer object or an array of them.
type OfferList []JSONLDOffer

func (o *OfferList) UnmarshalJSON(data []byte) error {
	var single JSONLDOffer
	if err := json.Unmarshal(data, &single); err == nil {
		*o = OfferList{single}
		return nil
	}

	var list []JSONLDOffer
	if err := json.Unmarshal(data, &list); err == nil {
		*o = OfferList(list)
		return nil
	}

	*o = nil
	return nil
}

type JSONLDAddress struct {
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
}

// UnmarshalJSON tolerates publishers that emit the address as a plain
// string instead of a PostalAddress object.
func (a *JSONLDAddress) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		a.StreetAddress = plain
		return nil
	}

	type alias JSONLDAddress
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	*a = JSONLDAddress(obj)
	return nil
}

type JSONLDLocation struct {
	Name    string        `json:"name"`
	Address JSONLDAddress `json:"address"`
}

// JSONLDEvent is a schema.org Event as embedded by The Events Calendar
// and similar plugins.
type JSONLDEvent struct {
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	URL         string          `json:"url"`
	Image       StringOrList    `json:"image"`
	Location    *JSONLDLocation `json:"location"`
	Offers      OfferList       `json:"offers"`
}

// ExtractJSONLDEvents pulls schema.org Event objects out of the
// ld+json script blocks of an HTML page. Handles a single Event, an
// array of them, and a @graph-wrapped container. Scripts that fail to
// parse as JSON are skipped.
func ExtractJSONLDEvents(html []byte) ([]JSONLDEvent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var events []JSONLDEvent

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		content := sel.Text()
		if content == "" {
			return
		}

		var raw json.RawMessage
		if err := json.Unmarshal([]byte(content), &raw); err != nil {
			return
		}

		events = append(events, collectJSONLDEvents(raw)...)
	})

	return events, nil
}

func collectJSONLDEvents(raw json.RawMessage) []JSONLDEvent {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil
		}
		var events []JSONLDEvent
		for _, item := range list {
			events = append(events, collectJSONLDEvents(item)...)
		}
		return events
	}

	// Container object with a @graph array
	var graph struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal(trimmed, &graph); err == nil && len(graph.Graph) > 0 {
		var events []JSONLDEvent
		for _, item := range graph.Graph {
			events = append(events, collectJSONLDEvents(item)...)
		}
		return events
	}

	var event JSONLDEvent
	if err := json.Unmarshal(trimmed, &event); err != nil {
		return nil
	}
	if event.Type != "Event" {
		return nil
	}

	return []JSONLDEvent{event}
}

// CandidateFromJSONLD maps a schema.org event into a Candidate,
// applying the shared validity rules. Returns nil when the event is
// invalid, in the past, or outside the coverage area.
func CandidateFromJSONLD(jsonLd JSONLDEvent, sourceName, sourceURL string, now time.Time) *Candidate {
	if jsonLd.Name == "" || jsonLd.StartDate == "" {
		return nil
	}

	startDate, err := dateparse.ParseIn(jsonLd.StartDate, time.Local)
	if err != nil {
		return nil
	}

	if startDate.Before(now) {
		return nil
	}

	var endDate *time.Time
	if jsonLd.EndDate != "" {
		if parsed, err := dateparse.ParseIn(jsonLd.EndDate, time.Local); err == nil && !parsed.Before(startDate) {
			endDate = &parsed
		}
	}

	venue := "Unknown Venue"
	address := ""
	city := "Nyack"
	if jsonLd.Location != nil {
		if jsonLd.Location.Name != "" {
			venue = jsonLd.Location.Name
		}
		address = jsonLd.Location.Address.StreetAddress
		if jsonLd.Location.Address.AddressLocality != "" {
			city = jsonLd.Location.Address.AddressLocality
		}
	}

	if !IsInCoverageArea(city) {
		return nil
	}

	var price string
	var isFree bool
	if len(jsonLd.Offers) > 0 {
		price, isFree = ParsePrice(jsonLd.Offers[0].Price)
	}

	title := CleanText(jsonLd.Name)
	description := CleanText(jsonLd.Description)

	eventURL := jsonLd.URL
	if eventURL == "" {
		eventURL = sourceURL
	}

	return &Candidate{
		Title:            title,
		Description:      description,
		StartDate:        startDate,
		EndDate:          endDate,
		Venue:            venue,
		Address:          address,
		City:             DisplayCity(city),
		IsNyackProper:    IsNyackProper(city),
		Category:         GuessCategory(title, description),
		Price:            price,
		IsFree:           isFree,
		IsFamilyFriendly: GuessFamilyFriendly(title, description),
		SourceURL:        eventURL,
		SourceName:       sourceName,
		ImageURL:         jsonLd.Image.First(),
	}
}
