package availability

import "time"

// SlotDuration is the fixed length of a bookable slot
const SlotDuration = time.Hour

// BookedSlot is an hour already taken by a non-cancelled appointment
type BookedSlot struct {
	AppointmentID uint
	Date          time.Time
	// Time is the stored "HH:MM:SS" value
	Time string
}

// TimeSlots returns the hour-aligned labels from start up to but excluding end.
// It returns nil when start is not before end.
func TimeSlots(start, end int) []string {
	if start >= end {
		return nil
	}
	slots := make([]string, 0, end-start)
	for hour := start; hour < end; hour++ {
		slots = append(slots, FormatHour(hour, 0))
	}
	return slots
}

// AvailableSlots returns the slots that no booked slot occupies on date, keeping their order.
// Booked times that cannot be parsed never match a slot.
func AvailableSlots(date time.Time, slots []string, booked []BookedSlot) []string {
	taken := make(map[string]struct{})
	for _, b := range booked {
		if !SameDay(b.Date, date) {
			continue
		}
		label, err := To12Hour(b.Time)
		if err != nil {
			continue
		}
		taken[label] = struct{}{}
	}

	free := make([]string, 0, len(slots))
	for _, slot := range slots {
		if _, ok := taken[slot]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// DropElapsed removes slots on date that start at or before now. Slots on other dates are kept.
func DropElapsed(date time.Time, slots []string, now time.Time) []string {
	if !SameDay(date, now) {
		return slots
	}
	kept := make([]string, 0, len(slots))
	for _, slot := range slots {
		hour, minute, err := parseLabel(slot)
		if err != nil {
			continue
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if start.After(now) {
			kept = append(kept, slot)
		}
	}
	return kept
}
