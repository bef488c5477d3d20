package availability

import "time"

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date, ignoring time of day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AvailableDays returns the dates from today through today+20 whose weekday is in days,
// in ascending order. An empty set yields no dates.
func AvailableDays(days WeekdaySet, today time.Time) []time.Time {
	start := StartOfDay(today)

	var result []time.Time
	for i := 0; i < HorizonDays; i++ {
		// time.Date normalises day overflow and keeps midnight across DST changes
		day := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, start.Location())
		if days.Has(day.Weekday()) {
			result = append(result, day)
		}
	}
	return result
}

// IsAvailableDay reports whether date is one of the bookable dates for days
func IsAvailableDay(days WeekdaySet, today, date time.Time) bool {
	for _, d := range AvailableDays(days, today) {
		if SameDay(d, date) {
			return true
		}
	}
	return false
}
