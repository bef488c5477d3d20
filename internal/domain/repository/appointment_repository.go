package repository

import (
	"time"

	"healthcare-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// MonthlyCount is the number of appointments in one calendar month
type MonthlyCount struct {
	Month int
	Count int64
}

// DoctorCount is the number of appointments a patient had with one doctor
type DoctorCount struct {
	DoctorID uint
	Count    int64
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindRecent(db *gorm.DB, limit int) ([]entity.Appointment, error)
	// FindBookedByDoctor returns the doctor's non-cancelled appointments on or after from
	FindBookedByDoctor(db *gorm.DB, doctorID uint, from time.Time) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uint) (int64, error)

	Count(db *gorm.DB) (int64, error)
	CountBetween(db *gorm.DB, from, to time.Time) (int64, error)
	CountActiveDoctorsBetween(db *gorm.DB, from, to time.Time) (int64, error)
	CountByMonth(db *gorm.DB, year int) ([]MonthlyCount, error)
	CountByPatient(db *gorm.DB, patientID uint) (int64, error)
	CountByPatientBetween(db *gorm.DB, patientID uint, from, to time.Time) (int64, error)
	FindByPatientAndStatuses(db *gorm.DB, patientID uint, statuses []entity.AppointmentStatus, after *time.Time) ([]entity.Appointment, error)
	TopDoctorForPatient(db *gorm.DB, patientID uint) (*DoctorCount, error)
}
