package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidClock = errors.New("invalid 24-hour time, use HH:MM or HH:MM:SS")
	ErrInvalidLabel = errors.New("invalid 12-hour time, use H:MM AM or H:MM PM")
)

// FormatHour renders hour and minute as a 12-hour label such as "2:00 PM"
func FormatHour(hour, minute int) string {
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}

// To12Hour converts a stored "HH:MM:SS" (or "HH:MM") time to its display label
func To12Hour(clock string) (string, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatHour(hour, minute), nil
}

// To24Hour converts a display label such as "2:00 PM" to the stored "14:00:00" form
func To24Hour(label string) (string, error) {
	hour, minute, err := parseLabel(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// NormalizeClock returns clock in the stored "HH:MM:SS" form
func NormalizeClock(clock string) (string, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

func parseClock(clock string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, ErrInvalidClock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidClock
	}
	if len(parts) == 3 {
		// postgres renders TIME values with optional fractional seconds
		whole, _, _ := strings.Cut(parts[2], ".")
		if second, err := strconv.Atoi(whole); err != nil || second < 0 || second > 59 {
			return 0, 0, ErrInvalidClock
		}
	}
	return hour, minute, nil
}

func parseLabel(label string) (int, int, error) {
	clock, meridiem, ok := strings.Cut(strings.TrimSpace(label), " ")
	if !ok {
		return 0, 0, ErrInvalidLabel
	}
	meridiem = strings.ToUpper(strings.TrimSpace(meridiem))
	if meridiem != "AM" && meridiem != "PM" {
		return 0, 0, ErrInvalidLabel
	}

	hourText, minuteText, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, ErrInvalidLabel
	}
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, ErrInvalidLabel
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || len(minuteText) != 2 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidLabel
	}
	return to24(hour, meridiem == "PM"), minute, nil
}

// to24 maps a 1-12 hour with its meridiem to 0-23
func to24(hour int, pm bool) int {
	switch {
	case pm && hour != 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	default:
		return hour
	}
}
