package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateBooking(t *testing.T) {
	cfg, _ := ParseSchedule("mon,wed", "9:00-12:00")
	today := time.Date(2024, 6, 13, 8, 0, 0, 0, time.UTC) // Thursday
	monday := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	booked := []BookedSlot{{AppointmentID: 4, Date: monday, Time: "10:00:00"}}

	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"free slot on service day", Submission{Date: monday, Slot: "9:00 AM"}, nil},
		{"booked slot", Submission{Date: monday, Slot: "10:00 AM"}, ErrSlotUnavailable},
		{"outside working hours", Submission{Date: monday, Slot: "1:00 PM"}, ErrSlotUnavailable},
		{"not a service day", Submission{Date: time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC), Slot: "9:00 AM"}, ErrDateUnavailable},
		{"beyond horizon", Submission{Date: time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC), Slot: "9:00 AM"}, ErrDateUnavailable},
		{"in the past", Submission{Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Slot: "9:00 AM"}, ErrDateUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBooking(cfg, today, tt.sub, booked)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
