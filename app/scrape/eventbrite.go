package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	eventbriteName = "Eventbrite"
	eventbriteURL  = "https://www.eventbrite.com/d/ny--nyack/events/"
)

// eventbriteSource scrapes the Eventbrite search results page for the
// Nyack area. Unlike the venue sites, Eventbrite publishes one
// JSON-LD ItemList whose elements are the events.
type eventbriteSource struct {
	url       string
	timeout   time.Duration
	client    *http.Client
	userAgent string
}

func NewEventbriteSource(client *http.Client, userAgent string) Source {
	return &eventbriteSource{
		url:       eventbriteURL,
		timeout:   SlowFetchTimeout,
		client:    client,
		userAgent: userAgent,
	}
}

func (s *eventbriteSource) Name() string {
	return eventbriteName
}

func (s *eventbriteSource) Scrape(ctx context.Context) Result {
	data, err := fetch(ctx, s.client, s.userAgent, s.url, s.timeout)
	if err != nil {
		return Result{
			SourceName:   eventbriteName,
			Status:       StatusError,
			ErrorMessage: err.Error(),
		}
	}

	items, err := extractItemListEvents(data)
	if err != nil {
		return Result{
			SourceName:   eventbriteName,
			Status:       StatusError,
			ErrorMessage: "failed to parse page: " + err.Error(),
		}
	}

	if len(items) == 0 {
		return Result{
			SourceName:   eventbriteName,
			Status:       StatusPartial,
			ErrorMessage: "no ItemList JSON-LD found on page",
		}
	}

	now := time.Now()
	var events []Candidate
	for _, item := range items {
		candidate := CandidateFromJSONLD(item, eventbriteName, s.url, now)
		if candidate == nil {
			continue
		}
		events = append(events, *candidate)
	}

	return Result{
		SourceName: eventbriteName,
		Events:     events,
		Status:     StatusSuccess,
	}
}

// extractItemListEvents finds the first JSON-LD ItemList on the page
// and returns its Event elements.
func extractItemListEvents(html []byte) ([]JSONLDEvent, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var items []JSONLDEvent

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var list struct {
			Type            string            `json:"@type"`
			ItemListElement []json.RawMessage `json:"itemListElement"`
		}
		if err := json.Unmarshal([]byte(sel.Text()), &list); err != nil {
			return true
		}
		if list.Type != "ItemList" || len(list.ItemListElement) == 0 {
			return true
		}

		for _, raw := range list.ItemListElement {
			if event, ok := decodeItemListElement(raw); ok {
				items = append(items, event)
			}
		}
		return false
	})

	return items, nil
}

// decodeItemListElement accepts both shapes Eventbrite has used: a
// bare Event, or a ListItem wrapper with the Event under "item".
func decodeItemListElement(raw json.RawMessage) (JSONLDEvent, bool) {
	var event JSONLDEvent
	if err := json.Unmarshal(raw, &event); err == nil && event.Type == "Event" {
		return event, true
	}

	var wrapper struct {
		Type string      `json:"@type"`
		Item JSONLDEvent `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Item.Type == "Event" {
		return wrapper.Item, true
	}

	return JSONLDEvent{}, false
}
