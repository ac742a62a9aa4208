package scrape

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

var entityPattern = regexp.MustCompile(`&(#x?[0-9a-fA-F]+|[a-zA-Z]+);`)

// DecodeHTMLEntities replaces numeric and a fixed set of named HTML
// entities. Two passes handle double-encoded input like "&amp;amp;".
func DecodeHTMLEntities(input string) string {
	if input == "" {
		return input
	}

	output := input
	for pass := 0; pass < 2; pass++ {
		output = entityPattern.ReplaceAllStringFunc(output, func(match string) string {
			entity := match[1 : len(match)-1]

			if strings.HasPrefix(entity, "#x") || strings.HasPrefix(entity, "#X") {
				codePoint, err := strconv.ParseInt(entity[2:], 16, 32)
				if err != nil {
					return match
				}
				return string(rune(codePoint))
			}

			if strings.HasPrefix(entity, "#") {
				codePoint, err := strconv.ParseInt(entity[1:], 10, 32)
				if err != nil {
					return match
				}
				return string(rune(codePoint))
			}

			if replacement, ok := namedEntities[entity]; ok {
				return replacement
			}
			return match
		})
	}

	return output
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup tags from a string.
func StripHTML(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}

// CleanText decodes entities, strips tags and trims the result.
func CleanText(raw string) string {
	return strings.TrimSpace(DecodeHTMLEntities(StripHTML(raw)))
}

// Truncate shortens text to at most max characters, appending an
// ellipsis when cut.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}

// ParsePrice normalizes raw price data from a source. Zero and the
// literal free markers map to an empty price with isFree true. Numbers
// are formatted as "$<n>"; other strings get a "$" prefix when missing.
// Arbitrary strings are never inferred to be free.
func ParsePrice(raw any) (price string, isFree bool) {
	if raw == nil {
		return "", false
	}

	switch v := raw.(type) {
	case float64:
		if v == 0 {
			return "", true
		}
		return "$" + strconv.FormatFloat(v, 'f', -1, 64), false
	case int:
		if v == 0 {
			return "", true
		}
		return fmt.Sprintf("$%d", v), false
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" {
			return "", false
		}
		if s == "0" || s == "free" || s == "$0" || s == "$0.00" {
			return "", true
		}
		if strings.HasPrefix(s, "$") {
			return s, false
		}
		return "$" + s, false
	default:
		return "", false
	}
}

var familyKeywords = []string{
	"family",
	"kids",
	"children",
	"all ages",
	"youth",
	"teens",
	"child-friendly",
	"kid-friendly",
	"family-friendly",
}

var adultKeywords = []string{
	"21+",
	"21 and over",
	"adults only",
	"bar",
	"cocktail",
	"wine tasting",
	"beer tasting",
	"late night",
}

// GuessFamilyFriendly infers the family-friendly flag from title and
// description text. Adult keywords take precedence over family
// keywords; unknown defaults to false.
func GuessFamilyFriendly(title, description string) bool {
	text := strings.ToLower(title + " " + description)

	for _, keyword := range adultKeywords {
		if strings.Contains(text, keyword) {
			return false
		}
	}

	for _, keyword := range familyKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	return false
}

var categoryKeywords = map[Category][]string{
	CategoryMusic:               {"concert", "music", "jazz", "band", "live music", "orchestra", "symphony", "singer", "dj"},
	CategoryComedy:              {"comedy", "comedian", "stand-up", "standup", "laugh", "improv", "levity"},
	CategoryMovies:              {"movie", "film", "cinema", "screening", "documentary"},
	CategoryTheater:             {"theater", "theatre", "play", "musical", "performance", "drama", "broadway"},
	CategoryFamilyKids:          {"kids", "children", "family", "child", "youth", "teen", "ages"},
	CategoryFoodDrink:           {"food", "wine", "beer", "tasting", "dinner", "brunch", "cocktail", "restaurant"},
	CategorySportsRecreation:    {"sports", "game", "fitness", "yoga", "run", "race", "golf", "tennis"},
	CategoryCommunityGovernment: {"town hall", "meeting", "council", "village", "community", "civic", "government", "board"},
	CategoryArtGalleries:        {"art", "gallery", "exhibit", "exhibition", "artist", "painting", "sculpture"},
	CategoryClassesWorkshops:    {"class", "workshop", "learn", "lesson", "course", "training", "seminar"},
}

// GuessCategory infers a category from title and description text by
// keyword search, checking categories in enumeration order. No match
// yields CategoryOther.
func GuessCategory(title, description string) Category {
	text := strings.ToLower(title + " " + description)

	for _, category := range Categories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				return category
			}
		}
	}

	return CategoryOther
}

var nyackCities = []string{"nyack", "south nyack", "upper nyack"}

// nearbyCities is the fixed coverage-area allow-list. Events from
// cities outside this list are dropped by the sources.
var nearbyCities = []string{
	"nyack",
	"south nyack",
	"upper nyack",
	"west nyack",
	"valley cottage",
	"piermont",
	"grandview",
	"grand view",
	"sparkill",
	"tappan",
	"orangeburg",
	"blauvelt",
	"palisades",
	"nanuet",
	"new city",
	"congers",
	"haverstraw",
	"garnerville",
	"stony point",
	"ossining",
	"tarrytown",
	"sleepy hollow",
	"irvington",
}

// IsNyackProper reports whether a city belongs to the primary service
// area (Nyack and its immediate villages).
func IsNyackProper(city string) bool {
	normalized := strings.ToLower(strings.TrimSpace(city))
	for _, c := range nyackCities {
		if normalized == c {
			return true
		}
	}
	return false
}

// IsInCoverageArea reports whether a city is inside the coverage area.
func IsInCoverageArea(city string) bool {
	normalized := strings.ToLower(strings.TrimSpace(city))
	for _, c := range nearbyCities {
		if normalized == c {
			return true
		}
	}
	return false
}

var cityCaser = cases.Title(language.AmericanEnglish)

// DisplayCity canonicalizes a scraped city name for storage and
// display ("west nyack" becomes "West Nyack").
func DisplayCity(city string) string {
	return cityCaser.String(strings.ToLower(strings.TrimSpace(city)))
}
