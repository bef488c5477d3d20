package entity

import (
	"strings"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus normalises a status string. The second result is false for unknown values.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case AppointmentStatusPending, AppointmentStatusScheduled, AppointmentStatusRescheduled,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return status, true
	}
	return "", false
}

// Appointment is a patient's booking of one doctor slot
type Appointment struct {
	ID                 uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID          uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID           uint              `gorm:"not null;index" json:"doctor_id"`
	AppointmentDate    time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime    string            `gorm:"type:time;not null" json:"appointment_time"`
	AppointmentType    *string           `gorm:"type:varchar(50)" json:"appointment_type,omitempty"`
	ReasonForVisit     *string           `gorm:"type:text" json:"reason_for_visit,omitempty"`
	Status             AppointmentStatus `gorm:"column:appointment_status;type:varchar(20);not null;default:'scheduled';index" json:"appointment_status"`
	Notes              *string           `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	RescheduleReason   *string           `gorm:"type:text" json:"reschedule_reason,omitempty"`
	RescheduleDate     *time.Time        `gorm:"type:date" json:"reschedule_date,omitempty"`
	RescheduleTime     *string           `gorm:"type:time" json:"reschedule_time,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment is cancelled. Stored statuses may differ in case.
func (a *Appointment) IsCancelled() bool {
	return strings.EqualFold(string(a.Status), string(AppointmentStatusCancelled))
}

// IsCompleted checks if the appointment is completed
func (a *Appointment) IsCompleted() bool {
	return strings.EqualFold(string(a.Status), string(AppointmentStatusCompleted))
}

// BlocksSlot reports whether the appointment occupies its doctor slot
func (a *Appointment) BlocksSlot() bool {
	return !a.IsCancelled()
}

// Cancel marks the appointment cancelled with the given reason
func (a *Appointment) Cancel(reason string) {
	a.Status = AppointmentStatusCancelled
	if reason != "" {
		a.CancellationReason = &reason
	}
}

// Reschedule moves the appointment to a new date and time, keeping the move on record
func (a *Appointment) Reschedule(date time.Time, clock, reason string) {
	a.AppointmentDate = date
	a.AppointmentTime = clock
	a.RescheduleDate = &date
	a.RescheduleTime = &clock
	if reason != "" {
		a.RescheduleReason = &reason
	}
	a.Status = AppointmentStatusRescheduled
}
