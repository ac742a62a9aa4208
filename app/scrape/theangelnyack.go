package scrape

import (
	"net/http"
)

const (
	theAngelName = "The Angel Nyack"
	theAngelURL  = "https://theangelnyack.com/events/"
)

// NewTheAngelNyackSource scrapes theangelnyack.com, another The Events
// Calendar site with JSON-LD Event markup.
func NewTheAngelNyackSource(client *http.Client, userAgent string) Source {
	return &jsonLdSource{
		name:      theAngelName,
		url:       theAngelURL,
		timeout:   DefaultFetchTimeout,
		client:    client,
		userAgent: userAgent,
	}
}
