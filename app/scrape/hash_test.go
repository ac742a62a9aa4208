package scrape

import (
	"testing"
	"time"
)

func TestGenerateEventHash_Deterministic(t *testing.T) {
	date := time.Date(2026, 3, 14, 19, 30, 0, 0, time.Local)

	first := GenerateEventHash("Jazz Night", "The Turning Point", date)
	second := GenerateEventHash("Jazz Night", "The Turning Point", date)

	if first != second {
		t.Errorf("Expected identical hashes, got %s and %s", first, second)
	}
	if len(first) != 32 {
		t.Errorf("Expected 32-character hash, got %d characters", len(first))
	}
}

func TestGenerateEventHash_IgnoresTimeOfDay(t *testing.T) {
	evening := time.Date(2026, 3, 14, 19, 30, 0, 0, time.Local)
	matinee := time.Date(2026, 3, 14, 14, 0, 0, 0, time.Local)

	if GenerateEventHash("Jazz Night", "The Turning Point", evening) !=
		GenerateEventHash("Jazz Night", "The Turning Point", matinee) {
		t.Error("Expected same-day events to share a fingerprint regardless of showtime")
	}
}

func TestGenerateEventHash_DifferentDays(t *testing.T) {
	friday := time.Date(2026, 3, 13, 20, 0, 0, 0, time.Local)
	saturday := time.Date(2026, 3, 14, 20, 0, 0, 0, time.Local)

	if GenerateEventHash("Jazz Night", "The Turning Point", friday) ==
		GenerateEventHash("Jazz Night", "The Turning Point", saturday) {
		t.Error("Expected different days to produce different fingerprints")
	}
}

func TestGenerateEventHash_TitleNormalization(t *testing.T) {
	date := time.Date(2026, 3, 14, 19, 0, 0, 0, time.Local)

	plain := GenerateEventHash("Casablanca", "Nyack Center", date)
	prefixed := GenerateEventHash("Film Screening: Casablanca", "Nyack Center", date)
	spaced := GenerateEventHash("  CASABLANCA  ", "Nyack Center", date)

	if plain != prefixed {
		t.Error("Expected boilerplate title prefix to be stripped before hashing")
	}
	if plain != spaced {
		t.Error("Expected case and whitespace differences to collide")
	}
}

func TestGenerateEventHash_VenueNormalization(t *testing.T) {
	date := time.Date(2026, 3, 14, 19, 0, 0, 0, time.Local)

	bare := GenerateEventHash("Jazz Night", "Turning Point", date)
	article := GenerateEventHash("Jazz Night", "The Turning Point", date)
	withAddress := GenerateEventHash("Jazz Night", "Turning Point, 468 Piermont Ave", date)

	if bare != article {
		t.Error("Expected leading \"The\" in venue to be ignored")
	}
	if bare != withAddress {
		t.Error("Expected venue address suffix to be ignored")
	}
}

func TestGenerateEventHash_DifferentVenues(t *testing.T) {
	date := time.Date(2026, 3, 14, 19, 0, 0, 0, time.Local)

	if GenerateEventHash("Jazz Night", "Turning Point", date) ==
		GenerateEventHash("Jazz Night", "Maureen's Jazz Cellar", date) {
		t.Error("Expected different venues to produce different fingerprints")
	}
}
