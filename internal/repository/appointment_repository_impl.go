package repository

import (
	"errors"
	"time"

	"healthcare-booking/internal/domain/entity"
	domainRepo "healthcare-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindAll supports optional filters: doctor, patient, status and a date range
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Patient").Preload("Doctor")

	if filter != nil {
		if filter.DoctorID != 0 {
			query = query.Where("doctor_id = ?", filter.DoctorID)
		}
		if filter.PatientID != 0 {
			query = query.Where("patient_id = ?", filter.PatientID)
		}
		if filter.Status != "" {
			query = query.Where("LOWER(appointment_status) = ?", string(filter.Status))
		}
		if filter.From != nil {
			query = query.Where("appointment_date >= ?", *filter.From)
		}
		if filter.To != nil {
			query = query.Where("appointment_date <= ?", *filter.To)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date ASC, appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindRecent(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor").
		Order("created_at DESC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBookedByDoctor(db *gorm.DB, doctorID uint, from time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND LOWER(appointment_status) <> ? AND appointment_date >= ?",
			doctorID, string(entity.AppointmentStatusCancelled), from.Format("2006-01-02")).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountActiveDoctorsBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Distinct("doctor_id").
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByMonth(db *gorm.DB, year int) ([]domainRepo.MonthlyCount, error) {
	var rows []domainRepo.MonthlyCount
	err := db.Model(&entity.Appointment{}).
		Select("EXTRACT(MONTH FROM appointment_date)::int AS month, COUNT(*) AS count").
		Where("EXTRACT(YEAR FROM appointment_date) = ?", year).
		Group("month").
		Order("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *appointmentRepository) CountByPatient(db *gorm.DB, patientID uint) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("patient_id = ?", patientID).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByPatientBetween(db *gorm.DB, patientID uint, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? AND appointment_date >= ? AND appointment_date < ?", patientID, from, to).
		Count(&count).Error
	return count, err
}

// FindByPatientAndStatuses returns the patient's appointments in any of statuses, optionally only those after a date.
// Upcoming appointments come back soonest first, others most recent first.
func (r *appointmentRepository) FindByPatientAndStatuses(db *gorm.DB, patientID uint, statuses []entity.AppointmentStatus, after *time.Time) ([]entity.Appointment, error) {
	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	query := db.Preload("Doctor").Where("patient_id = ? AND LOWER(appointment_status) IN ?", patientID, values)
	order := "appointment_date DESC, appointment_time DESC"
	if after != nil {
		query = query.Where("appointment_date > ?", after.Format("2006-01-02"))
		order = "appointment_date ASC, appointment_time ASC"
	}

	var appointments []entity.Appointment
	if err := query.Order(order).Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) TopDoctorForPatient(db *gorm.DB, patientID uint) (*domainRepo.DoctorCount, error) {
	var rows []domainRepo.DoctorCount
	err := db.Model(&entity.Appointment{}).
		Select("doctor_id, COUNT(*) AS count").
		Where("patient_id = ?", patientID).
		Group("doctor_id").
		Order("count DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
