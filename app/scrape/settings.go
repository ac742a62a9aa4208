package scrape

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceSettings tunes one scraper without a rebuild.
type SourceSettings struct {
	Enabled *bool `yaml:"enabled"`
	Timeout int   `yaml:"timeout"` // seconds, 0 keeps the source default
}

// SettingsFile maps source names to their overrides.
type SettingsFile struct {
	Sources map[string]SourceSettings `yaml:"sources"`
}

// LoadSettings reads the optional per-source settings file. A missing
// path or missing file yields empty settings; an unknown source name
// is an error so typos don't silently disable nothing.
func LoadSettings(path string, knownNames []string) (*SettingsFile, error) {
	settings := &SettingsFile{Sources: map[string]SourceSettings{}}
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if settings.Sources == nil {
		settings.Sources = map[string]SourceSettings{}
	}

	known := make(map[string]bool, len(knownNames))
	for _, name := range knownNames {
		known[name] = true
	}
	for name := range settings.Sources {
		if !known[name] {
			return nil, fmt.Errorf("unknown source in settings file: %q", name)
		}
	}

	return settings, nil
}

// IsEnabled reports whether a source should run. Sources are enabled
// unless the settings file says otherwise.
func (s *SettingsFile) IsEnabled(name string) bool {
	if override, ok := s.Sources[name]; ok && override.Enabled != nil {
		return *override.Enabled
	}
	return true
}

// TimeoutFor returns the configured fetch timeout for a source, or
// the given default.
func (s *SettingsFile) TimeoutFor(name string, fallback time.Duration) time.Duration {
	if override, ok := s.Sources[name]; ok && override.Timeout > 0 {
		return time.Duration(override.Timeout) * time.Second
	}
	return fallback
}
