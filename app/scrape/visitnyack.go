package scrape

import (
	"net/http"
)

const (
	visitNyackName = "Visit Nyack"
	visitNyackURL  = "https://visitnyack.org/calendar/"
)

// NewVisitNyackSource scrapes the visitnyack.org calendar. The site
// runs The Events Calendar plugin, which embeds JSON-LD Event markup.
func NewVisitNyackSource(client *http.Client, userAgent string) Source {
	return &jsonLdSource{
		name:      visitNyackName,
		url:       visitNyackURL,
		timeout:   DefaultFetchTimeout,
		client:    client,
		userAgent: userAgent,
	}
}
