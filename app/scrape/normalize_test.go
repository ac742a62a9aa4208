package scrape

import (
	"testing"
)

func TestDecodeHTMLEntities(t *testing.T) {
	result := DecodeHTMLEntities("A &amp; B &#39;test&#39;")
	if result != "A & B 'test'" {
		t.Errorf("Expected \"A & B 'test'\", got %q", result)
	}
}

func TestDecodeHTMLEntities_DoubleEncoded(t *testing.T) {
	// Some sources double-encode; a second pass resolves &amp;amp;
	result := DecodeHTMLEntities("Dinner &amp;amp; a Movie")
	if result != "Dinner & a Movie" {
		t.Errorf("Expected \"Dinner & a Movie\", got %q", result)
	}
}

func TestDecodeHTMLEntities_NumericHex(t *testing.T) {
	result := DecodeHTMLEntities("caf&#xe9;")
	if result != "café" {
		t.Errorf("Expected %q, got %q", "café", result)
	}
}

func TestStripHTML(t *testing.T) {
	result := StripHTML("<p>Live <b>music</b> tonight</p>")
	if result != "Live music tonight" {
		t.Errorf("Expected \"Live music tonight\", got %q", result)
	}
}

func TestCleanText_CollapsesWhitespace(t *testing.T) {
	result := CleanText("  Jazz   night\n\tat the  bar  ")
	if result != "Jazz night at the bar" {
		t.Errorf("Expected \"Jazz night at the bar\", got %q", result)
	}
}

func TestTruncate(t *testing.T) {
	result := Truncate("abcdefghij", 8)
	if result != "abcde..." {
		t.Errorf("Expected \"abcde...\", got %q", result)
	}

	short := Truncate("abc", 8)
	if short != "abc" {
		t.Errorf("Expected short text unchanged, got %q", short)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		price  string
		isFree bool
	}{
		{"nil", nil, "", false},
		{"zero float", float64(0), "", true},
		{"float", float64(15), "$15", false},
		{"int", 20, "$20", false},
		{"free string", "Free", "", true},
		{"zero string", "0", "", true},
		{"dollar zero", "$0.00", "", true},
		{"dollar string", "$25", "$25", false},
		{"empty string", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, isFree := ParsePrice(tt.input)
			if price != tt.price {
				t.Errorf("Expected price %q, got %q", tt.price, price)
			}
			if isFree != tt.isFree {
				t.Errorf("Expected isFree %v, got %v", tt.isFree, isFree)
			}
		})
	}
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		title    string
		expected Category
	}{
		{"Live Jazz Concert", CategoryMusic},
		{"Stand-up Comedy Night", CategoryComedy},
		{"Film Screening: Casablanca", CategoryMovies},
		{"Murder Mystery Play", CategoryTheater},
		{"Kids Story Hour", CategoryFamilyKids},
		{"Wine Tasting Dinner", CategoryFoodDrink},
		{"5K Fun Run", CategorySportsRecreation},
		{"Village Board Meeting", CategoryCommunityGovernment},
		{"Gallery Opening Reception", CategoryArtGalleries},
		{"Pottery Workshop", CategoryClassesWorkshops},
		{"Annual Duck Derby", CategoryOther},
	}

	for _, tt := range tests {
		result := GuessCategory(tt.title, "")
		if result != tt.expected {
			t.Errorf("GuessCategory(%q) = %s, expected %s", tt.title, result, tt.expected)
		}
	}
}

func TestGuessCategory_FirstMatchWins(t *testing.T) {
	// "concert" (music) appears before "comedy" in the evaluation
	// order, so a mixed title lands on MUSIC.
	result := GuessCategory("Comedy Concert Special", "")
	if result != CategoryMusic {
		t.Errorf("Expected MUSIC for mixed title, got %s", result)
	}
}

func TestGuessFamilyFriendly(t *testing.T) {
	if !GuessFamilyFriendly("Family Fun Day", "") {
		t.Error("Expected family keyword title to be family friendly")
	}
	if GuessFamilyFriendly("Adults Only Comedy Night", "family fun") {
		t.Error("Expected adult keyword to override family keyword")
	}
	if GuessFamilyFriendly("Wine Tasting", "") {
		t.Error("Expected neutral title to not be family friendly")
	}
}

func TestIsNyackProper(t *testing.T) {
	proper := []string{"Nyack", "nyack", "South Nyack", "UPPER NYACK"}
	for _, city := range proper {
		if !IsNyackProper(city) {
			t.Errorf("Expected %q to be Nyack proper", city)
		}
	}

	if IsNyackProper("West Nyack") {
		t.Error("West Nyack is not Nyack proper")
	}
	if IsNyackProper("Piermont") {
		t.Error("Piermont is not Nyack proper")
	}
}

func TestIsInCoverageArea(t *testing.T) {
	inArea := []string{"Nyack", "West Nyack", "Piermont", "Tarrytown", "Irvington"}
	for _, city := range inArea {
		if !IsInCoverageArea(city) {
			t.Errorf("Expected %q to be in coverage area", city)
		}
	}

	if IsInCoverageArea("Brooklyn") {
		t.Error("Brooklyn should not be in coverage area")
	}
	if IsInCoverageArea("") {
		t.Error("Empty city should not be in coverage area")
	}
}

func TestDisplayCity(t *testing.T) {
	result := DisplayCity("west nyack")
	if result != "West Nyack" {
		t.Errorf("Expected \"West Nyack\", got %q", result)
	}
}
