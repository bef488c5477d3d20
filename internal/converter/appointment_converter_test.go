package converter

import (
	"testing"
	"time"

	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookedSlotsFromAppointments_DropsCancelled(t *testing.T) {
	date := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	appointments := []entity.Appointment{
		{ID: 1, AppointmentDate: date, AppointmentTime: "09:00:00", Status: entity.AppointmentStatusScheduled},
		{ID: 2, AppointmentDate: date, AppointmentTime: "10:00:00", Status: "Cancelled"},
		{ID: 3, AppointmentDate: date, AppointmentTime: "11:00:00", Status: "CANCELLED"},
		{ID: 4, AppointmentDate: date, AppointmentTime: "12:00:00", Status: entity.AppointmentStatusCancelled},
		{ID: 5, AppointmentDate: date, AppointmentTime: "13:00:00", Status: "Pending"},
	}

	booked := BookedSlotsFromAppointments(appointments)

	require.Len(t, booked, 2)
	assert.Equal(t, uint(1), booked[0].AppointmentID)
	assert.Equal(t, uint(5), booked[1].AppointmentID)
}

func TestBookedSlotsFromAppointments_CancelledNeverBlocks(t *testing.T) {
	date := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	slots := availability.TimeSlots(9, 17)

	base := []entity.Appointment{
		{ID: 1, AppointmentDate: date, AppointmentTime: "09:00:00", Status: entity.AppointmentStatusScheduled},
	}
	withCancelled := append([]entity.Appointment{}, base...)
	for i, clock := range []string{"10:00:00", "11:00:00", "14:00:00"} {
		withCancelled = append(withCancelled, entity.Appointment{
			ID: uint(10 + i), AppointmentDate: date, AppointmentTime: clock, Status: "cancelled",
		})
	}

	want := availability.AvailableSlots(date, slots, BookedSlotsFromAppointments(base))
	got := availability.AvailableSlots(date, slots, BookedSlotsFromAppointments(withCancelled))

	assert.Equal(t, want, got)
	assert.NotContains(t, got, "9:00 AM")
	assert.Contains(t, got, "10:00 AM")
}

func TestAppointmentToResponse(t *testing.T) {
	specialty := "Cardiology"
	a := &entity.Appointment{
		ID:              7,
		PatientID:       3,
		DoctorID:        2,
		AppointmentDate: time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "14:00:00.000000",
		Status:          entity.AppointmentStatusScheduled,
		Patient:         entity.Patient{ID: 3, FullName: "Jane Roe", Email: "jane@example.com"},
		Doctor:          entity.Doctor{ID: 2, FullName: "Dr. Who", Specialty: &specialty},
	}

	resp := AppointmentToResponse(a)

	assert.Equal(t, "2024-06-17", resp.AppointmentDate)
	assert.Equal(t, "14:00:00", resp.AppointmentTime)
	assert.Equal(t, "2:00 PM", resp.TimeLabel)
	assert.Equal(t, "Jane Roe", resp.PatientName)
	assert.Equal(t, "Dr. Who", resp.DoctorName)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Nil(t, AppointmentToResponse(nil))
}

func TestSlotsToResponses(t *testing.T) {
	resp := SlotsToResponses([]string{"9:00 AM", "12:00 PM", "bogus"})

	require.Len(t, resp, 2)
	assert.Equal(t, "09:00:00", resp[0].Time)
	assert.Equal(t, "12:00:00", resp[1].Time)
}

func TestDoctorToResponse_Schedule(t *testing.T) {
	days := "Mon, Funday"
	d := &entity.Doctor{ID: 1, FullName: "Dr. A", ServiceDays: &days}

	resp := DoctorToResponse(d)

	assert.Equal(t, "mon", resp.Schedule.ServiceDays)
	assert.Equal(t, "9:00 AM", resp.Schedule.StartTime)
	assert.Equal(t, "5:00 PM", resp.Schedule.EndTime)
	assert.Len(t, resp.Schedule.Slots, 8)
	require.Len(t, resp.Schedule.Diagnostics, 1)
	assert.Equal(t, "service_days", resp.Schedule.Diagnostics[0].Field)
}
