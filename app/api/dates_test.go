package api

import (
	"testing"
	"time"
)

func TestResolveDateRange_Tonight(t *testing.T) {
	now := time.Date(2026, 3, 11, 14, 30, 0, 0, time.Local) // a Wednesday

	start, end, err := ResolveDateRange("tonight", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !start.Equal(now) {
		t.Errorf("Expected start now, got %v", start)
	}
	if end.Day() != 11 || end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("Expected end of today, got %v", end)
	}
}

func TestResolveDateRange_Tomorrow(t *testing.T) {
	now := time.Date(2026, 3, 11, 14, 30, 0, 0, time.Local)

	start, end, err := ResolveDateRange("tomorrow", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if start.Day() != 12 || start.Hour() != 0 {
		t.Errorf("Expected start of tomorrow, got %v", start)
	}
	if end.Day() != 12 || end.Hour() != 23 {
		t.Errorf("Expected end of tomorrow, got %v", end)
	}
}

func TestResolveDateRange_WeekendFromWednesday(t *testing.T) {
	now := time.Date(2026, 3, 11, 14, 30, 0, 0, time.Local) // Wednesday

	start, end, err := ResolveDateRange("weekend", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if start.Weekday() != time.Saturday || start.Day() != 14 || start.Hour() != 0 {
		t.Errorf("Expected upcoming Saturday midnight, got %v", start)
	}
	if end.Weekday() != time.Sunday || end.Day() != 15 || end.Hour() != 23 {
		t.Errorf("Expected Sunday night, got %v", end)
	}
}

func TestResolveDateRange_WeekendOnSaturday(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local) // Saturday

	start, end, err := ResolveDateRange("weekend", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Saturday starts at midnight so the morning's events stay in.
	if start.Day() != 14 || start.Hour() != 0 || start.Minute() != 0 {
		t.Errorf("Expected Saturday midnight, got %v", start)
	}
	if end.Weekday() != time.Sunday || end.Day() != 15 {
		t.Errorf("Expected Sunday night, got %v", end)
	}
}

func TestResolveDateRange_WeekendOnSunday(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local) // Sunday

	start, end, err := ResolveDateRange("weekend", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !start.Equal(now) {
		t.Errorf("Expected start now on a Sunday, got %v", start)
	}
	if end.Day() != 15 || end.Hour() != 23 {
		t.Errorf("Expected the rest of Sunday only, got %v", end)
	}
}

func TestResolveDateRange_Week(t *testing.T) {
	now := time.Date(2026, 3, 11, 14, 30, 0, 0, time.Local)

	start, end, err := ResolveDateRange("week", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !start.Equal(now) {
		t.Errorf("Expected start now, got %v", start)
	}
	if end.Day() != 18 || end.Hour() != 23 {
		t.Errorf("Expected end of the seventh day out, got %v", end)
	}
}

func TestResolveDateRange_Invalid(t *testing.T) {
	if _, _, err := ResolveDateRange("fortnight", time.Now()); err == nil {
		t.Error("Expected error for unknown range name")
	}
}
