package repository

import (
	"healthcare-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *entity.Admin) error
	FindByID(db *gorm.DB, id uint) (*entity.Admin, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Admin, error)
	FindAll(db *gorm.DB) ([]entity.Admin, error)
	Update(db *gorm.DB, admin *entity.Admin) error
	Delete(db *gorm.DB, id uint) (int64, error)
}
