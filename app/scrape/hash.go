package scrape

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// titlePrefixes are boilerplate lead-ins some sources prepend to the
// same underlying event; stripped before hashing so the listings
// collide.
var titlePrefixes = []string{
	"film screening:",
	"concert:",
	"live:",
	"an evening with",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

func normalizeTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, prefix := range titlePrefixes {
		if strings.HasPrefix(t, prefix) {
			t = strings.TrimSpace(strings.TrimPrefix(t, prefix))
			break
		}
	}
	return whitespacePattern.ReplaceAllString(t, " ")
}

func normalizeVenue(venue string) string {
	v := strings.ToLower(strings.TrimSpace(venue))
	// Drop the address suffix some sources append after the venue name
	if idx := strings.Index(v, ","); idx >= 0 {
		v = v[:idx]
	}
	v = strings.TrimPrefix(v, "the ")
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(v), " ")
}

// GenerateEventHash produces the deduplication fingerprint for an
// event: a SHA-256 over normalized title, normalized venue and the
// local calendar date, truncated to 32 hex characters.
//
// Time-of-day is deliberately discarded: two showings of the same
// title at the same venue on the same day collide. That coarsening is
// intended, so a rescheduled showtime refreshes the stored row instead
// of creating a near-duplicate listing.
func GenerateEventHash(title, venue string, startDate time.Time) string {
	normalized := normalizeTitle(title) + "|" + normalizeVenue(venue) + "|" + startDate.Local().Format("2006-01-02")

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:32]
}
