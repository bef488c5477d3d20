package converter

import (
	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
)

// ScheduleToResponse describes how a doctor's schedule fields were interpreted
func ScheduleToResponse(cfg availability.ScheduleConfig, diags []availability.Diagnostic) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ServiceDays: cfg.ServiceDays.String(),
		StartTime:   availability.FormatHour(cfg.StartHour, 0),
		EndTime:     availability.FormatHour(cfg.EndHour%24, 0),
		Slots:       cfg.Slots(),
		Diagnostics: diags,
	}
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	cfg, diags := doctor.Schedule()

	return &dto.DoctorResponse{
		ID:                doctor.ID,
		FullName:          doctor.FullName,
		Email:             doctor.Email,
		Specialty:         doctor.Specialty,
		Status:            doctor.Status,
		ServiceDays:       doctor.ServiceDays,
		AvailabilityTimes: doctor.AvailabilityTimes,
		Bio:               doctor.Bio,
		Schedule:          ScheduleToResponse(cfg, diags),
		CreatedAt:         doctor.CreatedAt,
		UpdatedAt:         doctor.UpdatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
