package scrape

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

func TestLoadSettings_MissingFile(t *testing.T) {
	settings, err := LoadSettings("", SourceNames)
	if err != nil {
		t.Fatalf("Unexpected error for empty path: %v", err)
	}
	if !settings.IsEnabled("Visit Nyack") {
		t.Error("Expected sources enabled by default")
	}

	settings, err = LoadSettings("/nonexistent/sources.yaml", SourceNames)
	if err != nil {
		t.Fatalf("Unexpected error for missing file: %v", err)
	}
	if !settings.IsEnabled("Eventbrite") {
		t.Error("Expected sources enabled by default")
	}
}

func TestLoadSettings_Overrides(t *testing.T) {
	path := writeSettingsFile(t, `
sources:
  Eventbrite:
    enabled: false
  "Levity Live":
    timeout: 30
`)

	settings, err := LoadSettings(path, SourceNames)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if settings.IsEnabled("Eventbrite") {
		t.Error("Expected Eventbrite to be disabled")
	}
	if !settings.IsEnabled("Levity Live") {
		t.Error("Expected Levity Live to stay enabled")
	}
	if got := settings.TimeoutFor("Levity Live", SlowFetchTimeout); got != 30*time.Second {
		t.Errorf("Expected 30s timeout override, got %v", got)
	}
	if got := settings.TimeoutFor("Visit Nyack", DefaultFetchTimeout); got != DefaultFetchTimeout {
		t.Errorf("Expected default timeout for untouched source, got %v", got)
	}
}

func TestLoadSettings_UnknownSourceRejected(t *testing.T) {
	path := writeSettingsFile(t, `
sources:
  "Visit Nyak":
    enabled: false
`)

	if _, err := LoadSettings(path, SourceNames); err == nil {
		t.Error("Expected error for misspelled source name")
	}
}

func TestNewSources_Order(t *testing.T) {
	sources := NewSources(nil, "test-agent", nil)

	if len(sources) != len(SourceNames) {
		t.Fatalf("Expected %d sources, got %d", len(SourceNames), len(sources))
	}
	for i, source := range sources {
		if source.Name() != SourceNames[i] {
			t.Errorf("Position %d: expected %q, got %q", i, SourceNames[i], source.Name())
		}
	}
}

func TestNewSources_TimeoutOverrideReachesEverySource(t *testing.T) {
	settings := &SettingsFile{Sources: map[string]SourceSettings{}}
	for _, name := range SourceNames {
		settings.Sources[name] = SourceSettings{Timeout: 42}
	}

	for _, source := range NewSources(nil, "test-agent", settings) {
		var got time.Duration
		switch s := source.(type) {
		case *jsonLdSource:
			got = s.timeout
		case *eventbriteSource:
			got = s.timeout
		case *rivertownSource:
			got = s.timeout
		case *villageSource:
			got = s.timeout
		default:
			t.Errorf("Source %q has no timeout field", source.Name())
			continue
		}
		if got != 42*time.Second {
			t.Errorf("Source %q: expected 42s timeout override, got %v", source.Name(), got)
		}
	}
}

func TestNewSources_DisabledFiltered(t *testing.T) {
	disabled := false
	settings := &SettingsFile{Sources: map[string]SourceSettings{
		"Eventbrite": {Enabled: &disabled},
	}}

	sources := NewSources(nil, "test-agent", settings)

	if len(sources) != len(SourceNames)-1 {
		t.Fatalf("Expected %d sources, got %d", len(SourceNames)-1, len(sources))
	}
	for _, source := range sources {
		if source.Name() == "Eventbrite" {
			t.Error("Expected Eventbrite to be filtered out")
		}
	}
}
