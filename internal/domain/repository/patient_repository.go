package repository

import (
	"time"

	"healthcare-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uint) (*entity.Patient, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)
	FindLatest(db *gorm.DB, limit int) ([]entity.Patient, error)
	Update(db *gorm.DB, patient *entity.Patient) error
	UpdateAccountStatus(db *gorm.DB, id uint, status string) (int64, error)
	Delete(db *gorm.DB, id uint) (int64, error)
	Count(db *gorm.DB) (int64, error)
	CountCreatedBefore(db *gorm.DB, before time.Time) (int64, error)
}
