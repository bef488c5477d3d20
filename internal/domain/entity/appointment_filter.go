package entity

import "time"

// AppointmentFilter is a domain-level filter for listing appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	DoctorID  uint
	PatientID uint
	Status    AppointmentStatus
	From      *time.Time
	To        *time.Time
}
