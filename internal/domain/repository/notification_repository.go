package repository

import (
	"healthcare-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	FindByID(db *gorm.DB, id uint) (*entity.PatientNotification, error)
	FindByPatientID(db *gorm.DB, patientID uint) ([]entity.PatientNotification, error)
	Upsert(db *gorm.DB, notification *entity.PatientNotification) error
	Delete(db *gorm.DB, id uint) (int64, error)
}
