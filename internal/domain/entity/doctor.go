package entity

import (
	"time"

	"healthcare-booking/internal/availability"
)

// Doctor status values
const (
	DoctorStatusActive   = "active"
	DoctorStatusInactive = "inactive"
	DoctorStatusOnLeave  = "on_leave"
)

// Doctor is a bookable practitioner. ServiceDays and AvailabilityTimes are free text
// entered by admins and parsed leniently when availability is computed.
type Doctor struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName          string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Specialty         *string   `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	Status            string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	ServiceDays       *string   `gorm:"type:varchar(100)" json:"service_days,omitempty"`
	AvailabilityTimes *string   `gorm:"type:varchar(50)" json:"availability_times,omitempty"`
	Bio               *string   `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsActive reports whether the doctor currently takes bookings
func (d *Doctor) IsActive() bool {
	return d.Status == DoctorStatusActive
}

// Schedule parses the doctor's free-text schedule fields
func (d *Doctor) Schedule() (availability.ScheduleConfig, []availability.Diagnostic) {
	return availability.ParseSchedule(deref(d.ServiceDays), deref(d.AvailabilityTimes))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
