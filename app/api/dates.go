package api

import (
	"fmt"
	"time"
)

// ResolveDateRange maps a named range onto concrete local-time
// bounds:
//
//	tonight  - now through the end of today
//	tomorrow - the whole next calendar day
//	weekend  - upcoming Saturday through Sunday night; on a Sunday,
//	           the rest of that Sunday
//	week     - now through the end of the seventh day out
func ResolveDateRange(name string, now time.Time) (time.Time, time.Time, error) {
	switch name {
	case "tonight":
		return now, endOfDay(now), nil

	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		return startOfDay(tomorrow), endOfDay(tomorrow), nil

	case "weekend":
		switch now.Weekday() {
		case time.Saturday:
			return startOfDay(now), endOfDay(now.AddDate(0, 0, 1)), nil
		case time.Sunday:
			return now, endOfDay(now), nil
		default:
			daysUntilSaturday := int(time.Saturday - now.Weekday())
			saturday := now.AddDate(0, 0, daysUntilSaturday)
			return startOfDay(saturday), endOfDay(saturday.AddDate(0, 0, 1)), nil
		}

	case "week":
		return now, endOfDay(now.AddDate(0, 0, 7)), nil

	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date range: %q (expected tonight, tomorrow, weekend or week)", name)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
