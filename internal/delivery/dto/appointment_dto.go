package dto

import "time"

// Request DTOs

// CreateAppointmentRequest takes the slot either as its label ("2:00 PM") or as a 24-hour time
type CreateAppointmentRequest struct {
	DoctorID        uint    `json:"doctor_id" validate:"required,gt=0"`
	AppointmentDate string  `json:"appointment_date" validate:"required,date"`
	AppointmentTime string  `json:"appointment_time" validate:"required,max=16"`
	AppointmentType *string `json:"appointment_type" validate:"omitempty,max=50"`
	ReasonForVisit  *string `json:"reason_for_visit" validate:"omitempty,max=1000"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required,date"`
	AppointmentTime string `json:"appointment_time" validate:"required,max=16"`
	Reason          string `json:"reason" validate:"omitempty,max=500"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending scheduled rescheduled completed cancelled"`
}

type UpdateAppointmentNotesRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uint      `json:"id"`
	PatientID          uint      `json:"patient_id"`
	PatientName        string    `json:"patient_name,omitempty"`
	PatientEmail       string    `json:"patient_email,omitempty"`
	PatientImage       *string   `json:"patient_image,omitempty"`
	DoctorID           uint      `json:"doctor_id"`
	DoctorName         string    `json:"doctor_name,omitempty"`
	Specialty          *string   `json:"specialty,omitempty"`
	AppointmentDate    string    `json:"appointment_date"`
	AppointmentTime    string    `json:"appointment_time"`
	TimeLabel          string    `json:"time_label,omitempty"`
	AppointmentType    *string   `json:"appointment_type,omitempty"`
	ReasonForVisit     *string   `json:"reason_for_visit,omitempty"`
	Status             string    `json:"appointment_status"`
	Notes              *string   `json:"notes,omitempty"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	RescheduleReason   *string   `json:"reschedule_reason,omitempty"`
	RescheduleDate     string    `json:"reschedule_date,omitempty"`
	RescheduleTime     *string   `json:"reschedule_time,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
