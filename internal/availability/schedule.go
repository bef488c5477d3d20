package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// HorizonDays is the number of calendar days, today included, a patient may book into
	HorizonDays = 21

	DefaultStartHour = 9
	DefaultEndHour   = 17

	// DefaultServiceDays is used when a doctor has no service days configured
	DefaultServiceDays = "mon,tue,wed,thu,fri"
)

var weekdayTokens = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// WeekdaySet is the set of weekdays a doctor accepts appointments on
type WeekdaySet [7]bool

// NewWeekdaySet builds a set from the given weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s[d] = true
	}
	return s
}

// Has reports whether d is in the set
func (s WeekdaySet) Has(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday && s[d]
}

// Empty reports whether no weekday is set
func (s WeekdaySet) Empty() bool {
	for _, v := range s {
		if v {
			return false
		}
	}
	return true
}

// String renders the set in the canonical "mon,wed,fri" form
func (s WeekdaySet) String() string {
	var parts []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s[d] {
			parts = append(parts, strings.ToLower(d.String()[:3]))
		}
	}
	return strings.Join(parts, ",")
}

// Diagnostic describes a part of a free-text schedule field that was ignored or defaulted
type Diagnostic struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %q: %s", d.Field, d.Value, d.Reason)
}

// ScheduleConfig is the typed view of a doctor's free-text schedule fields
type ScheduleConfig struct {
	ServiceDays WeekdaySet
	StartHour   int
	EndHour     int
}

// DefaultSchedule returns the Mon-Fri 09:00-17:00 schedule
func DefaultSchedule() ScheduleConfig {
	days, _ := ParseServiceDays(DefaultServiceDays)
	return ScheduleConfig{
		ServiceDays: days,
		StartHour:   DefaultStartHour,
		EndHour:     DefaultEndHour,
	}
}

// ParseSchedule parses the doctor's service days and availability times.
// Malformed input never fails; it falls back to defaults and is reported in the diagnostics.
func ParseSchedule(serviceDays, availabilityTimes string) (ScheduleConfig, []Diagnostic) {
	days, diags := ParseServiceDays(serviceDays)
	start, end, hourDiags := ParseWorkingHours(availabilityTimes)

	return ScheduleConfig{
		ServiceDays: days,
		StartHour:   start,
		EndHour:     end,
	}, append(diags, hourDiags...)
}

// ParseServiceDays parses a comma separated weekday list such as "Mon, Wed, Fri".
// An empty value means Monday to Friday. Unknown tokens are skipped, so a value
// made only of unknown tokens yields an empty set.
func ParseServiceDays(text string) (WeekdaySet, []Diagnostic) {
	if strings.TrimSpace(text) == "" {
		text = DefaultServiceDays
	}

	var (
		set   WeekdaySet
		diags []Diagnostic
	)
	for _, raw := range strings.Split(text, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		day, ok := lookupWeekday(token)
		if !ok {
			diags = append(diags, Diagnostic{Field: "service_days", Value: raw, Reason: "unknown weekday, ignored"})
			continue
		}
		set[day] = true
	}

	if set.Empty() {
		diags = append(diags, Diagnostic{Field: "service_days", Value: text, Reason: "no recognised weekday, doctor has no bookable days"})
	}
	return set, diags
}

// lookupWeekday accepts three letter abbreviations and full weekday names
func lookupWeekday(token string) (time.Weekday, bool) {
	if day, ok := weekdayTokens[token]; ok {
		return day, true
	}
	if len(token) > 3 {
		if day, ok := weekdayTokens[token[:3]]; ok && strings.EqualFold(day.String(), token) {
			return day, true
		}
	}
	return 0, false
}

// ParseWorkingHours parses an "H:MM-H:MM" range into whole start and end hours.
// Minutes are dropped. Missing, malformed or inverted ranges fall back to 09:00-17:00.
func ParseWorkingHours(text string) (int, int, []Diagnostic) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultStartHour, DefaultEndHour, nil
	}

	fallback := func(reason string) (int, int, []Diagnostic) {
		return DefaultStartHour, DefaultEndHour, []Diagnostic{{Field: "availability_times", Value: text, Reason: reason}}
	}

	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return fallback("expected a start-end range, using 09:00-17:00")
	}

	start, err := parseHour(parts[0])
	if err != nil {
		return fallback("invalid start time, using 09:00-17:00")
	}
	end, err := parseHour(parts[1])
	if err != nil {
		return fallback("invalid end time, using 09:00-17:00")
	}
	if start < 0 || start > 23 || end < 1 || end > 24 {
		return fallback("hour out of range, using 09:00-17:00")
	}
	if start >= end {
		return fallback("start is not before end, using 09:00-17:00")
	}
	return start, end, nil
}

// parseHour reads the hour of "9", "09:00", "9:00 AM" or "17:00:00"
func parseHour(text string) (int, error) {
	text = strings.ToUpper(strings.TrimSpace(text))

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(text, suffix) {
			meridiem = suffix
			text = strings.TrimSpace(strings.TrimSuffix(text, suffix))
		}
	}

	hourText, _, _ := strings.Cut(text, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourText))
	if err != nil {
		return 0, err
	}

	switch meridiem {
	case "":
		return hour, nil
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("hour %d out of 12-hour range", hour)
		}
		return to24(hour, meridiem == "PM"), nil
	}
	return hour, nil
}

// Days returns the bookable dates in the horizon starting at today
func (c ScheduleConfig) Days(today time.Time) []time.Time {
	return AvailableDays(c.ServiceDays, today)
}

// Slots returns every slot label of the working day
func (c ScheduleConfig) Slots() []string {
	return TimeSlots(c.StartHour, c.EndHour)
}

// FreeSlots returns the slot labels on date that no booked slot occupies
func (c ScheduleConfig) FreeSlots(date time.Time, booked []BookedSlot) []string {
	return AvailableSlots(date, c.Slots(), booked)
}
