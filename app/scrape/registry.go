package scrape

import (
	"net/http"
)

// SourceNames lists every scraper in execution order.
var SourceNames = []string{
	visitNyackName,
	theAngelName,
	eventbriteName,
	levityName,
	elmwoodName,
	rivertownName,
	villageName,
}

// NewSources builds the full scraper set in execution order,
// honoring per-source settings. A nil settings file means all sources
// run with their defaults.
func NewSources(client *http.Client, userAgent string, settings *SettingsFile) []Source {
	if settings == nil {
		settings = &SettingsFile{Sources: map[string]SourceSettings{}}
	}

	all := []Source{
		NewVisitNyackSource(client, userAgent),
		NewTheAngelNyackSource(client, userAgent),
		NewEventbriteSource(client, userAgent),
		NewLevityLiveSource(client, userAgent),
		NewElmwoodPlayhouseSource(client, userAgent),
		NewRivertownFilmSource(client, userAgent),
		NewVillageSource(client, userAgent),
	}

	sources := make([]Source, 0, len(all))
	for _, source := range all {
		if !settings.IsEnabled(source.Name()) {
			continue
		}
		applyTimeout(source, settings)
		sources = append(sources, source)
	}
	return sources
}

// applyTimeout pushes a configured fetch timeout into a source.
func applyTimeout(source Source, settings *SettingsFile) {
	switch s := source.(type) {
	case *jsonLdSource:
		s.timeout = settings.TimeoutFor(s.name, s.timeout)
	case *eventbriteSource:
		s.timeout = settings.TimeoutFor(eventbriteName, s.timeout)
	case *rivertownSource:
		s.timeout = settings.TimeoutFor(rivertownName, s.timeout)
	case *villageSource:
		s.timeout = settings.TimeoutFor(villageName, s.timeout)
	}
}
