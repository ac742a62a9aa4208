package scrape

import (
	"net/http"
)

const (
	levityName    = "Levity Live"
	levityURL     = "https://www.levitylive.com/nyack"
	levityVenue   = "Levity Live"
	levityCity    = "West Nyack"
	levityAddress = "4210 Palisades Center Dr, West Nyack, NY 10994"
)

// NewLevityLiveSource scrapes the Levity Live comedy club. Its pages
// wrap JSON-LD events in a @graph container and omit usable location
// data, so venue details are pinned and everything is COMEDY.
func NewLevityLiveSource(client *http.Client, userAgent string) Source {
	return &jsonLdSource{
		name:      levityName,
		url:       levityURL,
		timeout:   SlowFetchTimeout,
		client:    client,
		userAgent: userAgent,
		override: func(c *Candidate) {
			c.Venue = levityVenue
			c.Address = levityAddress
			c.City = levityCity
			c.IsNyackProper = false
			c.Category = CategoryComedy
		},
	}
}
