package repository

import (
	"errors"

	"healthcare-booking/internal/domain/entity"
	domainRepo "healthcare-booking/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) FindByID(db *gorm.DB, id uint) (*entity.PatientNotification, error) {
	var notification entity.PatientNotification
	err := db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindByPatientID(db *gorm.DB, patientID uint) ([]entity.PatientNotification, error) {
	var notifications []entity.PatientNotification
	err := db.Where("patient_id = ?", patientID).Order("notification_type ASC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// Upsert inserts the preference or overwrites the existing one for the same patient and channel
func (r *notificationRepository) Upsert(db *gorm.DB, notification *entity.PatientNotification) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "patient_id"}, {Name: "notification_type"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"appointment_reminders", "appointment_changes", "medical_updates", "is_enabled",
		}),
	}).Create(notification).Error
}

func (r *notificationRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.PatientNotification{})
	return result.RowsAffected, result.Error
}
