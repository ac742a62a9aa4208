package scrape

import (
	"context"
	"net/http"
	"time"
)

// jsonLdSource is the shared skeleton for sources whose pages embed
// schema.org Event markup. Per-source differences are the page URL,
// the fetch timeout, and an optional override applied to each
// candidate (single-purpose venues pin venue/category/city).
type jsonLdSource struct {
	name      string
	url       string
	timeout   time.Duration
	client    *http.Client
	userAgent string
	override  func(*Candidate)
}

func (s *jsonLdSource) Name() string {
	return s.name
}

func (s *jsonLdSource) Scrape(ctx context.Context) Result {
	data, err := fetch(ctx, s.client, s.userAgent, s.url, s.timeout)
	if err != nil {
		return Result{
			SourceName:   s.name,
			Status:       StatusError,
			ErrorMessage: err.Error(),
		}
	}

	jsonLdEvents, err := ExtractJSONLDEvents(data)
	if err != nil {
		return Result{
			SourceName:   s.name,
			Status:       StatusError,
			ErrorMessage: "failed to parse page: " + err.Error(),
		}
	}

	if len(jsonLdEvents) == 0 {
		return Result{
			SourceName:   s.name,
			Status:       StatusPartial,
			ErrorMessage: "no JSON-LD events found on page",
		}
	}

	now := time.Now()
	var events []Candidate
	for _, jsonLd := range jsonLdEvents {
		candidate := CandidateFromJSONLD(jsonLd, s.name, s.url, now)
		if candidate == nil {
			continue
		}
		if s.override != nil {
			s.override(candidate)
		}
		events = append(events, *candidate)
	}

	return Result{
		SourceName: s.name,
		Events:     events,
		Status:     StatusSuccess,
	}
}
