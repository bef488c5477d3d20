package availability

import (
	"errors"
	"time"
)

var (
	ErrDateUnavailable = errors.New("selected date is not a bookable day for this doctor")
	ErrSlotUnavailable = errors.New("selected time slot is not available")
)

// Submission is a requested appointment date and slot label
type Submission struct {
	Date time.Time
	Slot string
}

// ValidateBooking checks that the submission's date is one of the doctor's bookable days
// and that its slot is still free on that date. Nothing is written; callers run this
// before dispatching the booking to storage.
func ValidateBooking(cfg ScheduleConfig, today time.Time, sub Submission, booked []BookedSlot) error {
	if !IsAvailableDay(cfg.ServiceDays, today, sub.Date) {
		return ErrDateUnavailable
	}
	for _, slot := range cfg.FreeSlots(sub.Date, booked) {
		if slot == sub.Slot {
			return nil
		}
	}
	return ErrSlotUnavailable
}
