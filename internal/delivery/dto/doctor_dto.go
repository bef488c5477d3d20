package dto

import (
	"time"

	"healthcare-booking/internal/availability"
)

// Request DTOs

// CreateDoctorRequest stores service_days and availability_times as given;
// the response shows how they are interpreted.
type CreateDoctorRequest struct {
	FullName          string  `json:"full_name" validate:"required,min=2,max=255"`
	Email             string  `json:"email" validate:"required,email"`
	Specialty         *string `json:"specialty" validate:"omitempty,max=100"`
	Status            string  `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
	ServiceDays       *string `json:"service_days" validate:"omitempty,max=100"`
	AvailabilityTimes *string `json:"availability_times" validate:"omitempty,max=50"`
	Bio               *string `json:"bio" validate:"omitempty,max=2000"`
}

type UpdateDoctorRequest = CreateDoctorRequest

type UpdateServiceDaysRequest struct {
	ServiceDays string `json:"service_days" validate:"max=100"`
}

type UpdateAvailabilityTimesRequest struct {
	AvailabilityTimes string `json:"availability_times" validate:"max=50"`
}

type UpdateDoctorStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive on_leave"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio" validate:"max=2000"`
}

type UpdateSpecialtyRequest struct {
	Specialty string `json:"specialty" validate:"required,max=100"`
}

// Response DTOs

// ScheduleResponse is the interpreted weekly schedule of a doctor
type ScheduleResponse struct {
	ServiceDays string                    `json:"service_days"`
	StartTime   string                    `json:"start_time"`
	EndTime     string                    `json:"end_time"`
	Slots       []string                  `json:"slots"`
	Diagnostics []availability.Diagnostic `json:"diagnostics,omitempty"`
}

type DoctorResponse struct {
	ID                uint             `json:"id"`
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	Specialty         *string          `json:"specialty,omitempty"`
	Status            string           `json:"status"`
	ServiceDays       *string          `json:"service_days,omitempty"`
	AvailabilityTimes *string          `json:"availability_times,omitempty"`
	Bio               *string          `json:"bio,omitempty"`
	Schedule          ScheduleResponse `json:"schedule"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
