package converter

import (
	"time"

	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		DoctorID:           appointment.DoctorID,
		AppointmentDate:    appointment.AppointmentDate.Format(dateLayout),
		AppointmentTime:    appointment.AppointmentTime,
		AppointmentType:    appointment.AppointmentType,
		ReasonForVisit:     appointment.ReasonForVisit,
		Status:             string(appointment.Status),
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		RescheduleReason:   appointment.RescheduleReason,
		RescheduleTime:     appointment.RescheduleTime,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if clock, err := availability.NormalizeClock(appointment.AppointmentTime); err == nil {
		response.AppointmentTime = clock
	}
	if label, err := availability.To12Hour(appointment.AppointmentTime); err == nil {
		response.TimeLabel = label
	}
	if appointment.RescheduleDate != nil {
		response.RescheduleDate = appointment.RescheduleDate.Format(dateLayout)
	}

	// Include patient and doctor info if loaded
	if appointment.Patient.ID != 0 {
		response.PatientName = appointment.Patient.FullName
		response.PatientEmail = appointment.Patient.Email
		response.PatientImage = appointment.Patient.ProfilePic
	}
	if appointment.Doctor.ID != 0 {
		response.DoctorName = appointment.Doctor.FullName
		response.Specialty = appointment.Doctor.Specialty
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// BookedSlotsFromAppointments keeps the appointments that occupy a slot.
// Cancelled appointments never reach the availability filter, whatever the case of their status.
func BookedSlotsFromAppointments(appointments []entity.Appointment) []availability.BookedSlot {
	booked := make([]availability.BookedSlot, 0, len(appointments))
	for _, a := range appointments {
		if !a.BlocksSlot() {
			continue
		}
		booked = append(booked, availability.BookedSlot{
			AppointmentID: a.ID,
			Date:          a.AppointmentDate,
			Time:          a.AppointmentTime,
		})
	}
	return booked
}

// BookedSlotsToResponses renders booked slots with their 24-hour value and label
func BookedSlotsToResponses(booked []availability.BookedSlot) []dto.BookedSlotResponse {
	responses := make([]dto.BookedSlotResponse, 0, len(booked))
	for _, b := range booked {
		resp := dto.BookedSlotResponse{
			AppointmentID: b.AppointmentID,
			Date:          b.Date.Format(dateLayout),
			Time:          b.Time,
		}
		if clock, err := availability.NormalizeClock(b.Time); err == nil {
			resp.Time = clock
		}
		if label, err := availability.To12Hour(b.Time); err == nil {
			resp.Label = label
		}
		responses = append(responses, resp)
	}
	return responses
}

// SlotsToResponses pairs each slot label with its 24-hour value
func SlotsToResponses(slots []string) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, 0, len(slots))
	for _, label := range slots {
		clock, err := availability.To24Hour(label)
		if err != nil {
			continue
		}
		responses = append(responses, dto.SlotResponse{Label: label, Time: clock})
	}
	return responses
}

// DaysToResponses renders bookable dates as YYYY-MM-DD with their weekday name
func DaysToResponses(days []time.Time) []dto.AvailableDayResponse {
	responses := make([]dto.AvailableDayResponse, len(days))
	for i, day := range days {
		responses[i] = dto.AvailableDayResponse{
			Date:    day.Format(dateLayout),
			Weekday: day.Weekday().String(),
		}
	}
	return responses
}
