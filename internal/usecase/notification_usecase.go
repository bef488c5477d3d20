package usecase

import (
	"context"
	"errors"

	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification preference not found")
)

type NotificationUsecase interface {
	GetMine(ctx context.Context) ([]dto.NotificationResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertNotificationRequest) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) GetMine(ctx context.Context) ([]dto.NotificationResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := u.notificationRepo.FindByPatientID(u.db.WithContext(ctx), actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find notifications for patient %d: %+v", actor.ID, err)
		return nil, err
	}

	return converter.NotificationsToResponses(notifications), nil
}

// Upsert saves the caller's preferences for one channel. Flags missing from the request keep
// their stored value, or the channel defaults when nothing is stored yet.
func (u *notificationUsecase) Upsert(ctx context.Context, req *dto.UpsertNotificationRequest) (*dto.NotificationResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	existing, err := u.notificationRepo.FindByPatientID(db, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find notifications for patient %d: %+v", actor.ID, err)
		return nil, err
	}

	notification := defaultNotification(actor.ID, req.NotificationType)
	for i := range existing {
		if existing[i].NotificationType == req.NotificationType {
			notification = existing[i]
			break
		}
	}

	applyFlag(&notification.AppointmentReminders, req.AppointmentReminders)
	applyFlag(&notification.AppointmentChanges, req.AppointmentChanges)
	applyFlag(&notification.MedicalUpdates, req.MedicalUpdates)
	applyFlag(&notification.IsEnabled, req.IsEnabled)

	if err := u.notificationRepo.Upsert(db, &notification); err != nil {
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to save notification for patient %d: %+v", actor.ID, err)
		return nil, err
	}

	return converter.NotificationToResponse(&notification), nil
}

func (u *notificationUsecase) Delete(ctx context.Context, id uint) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	db := u.db.WithContext(ctx)

	notification, err := u.notificationRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find notification %d: %+v", id, err)
		return err
	}
	// Another patient's preference is reported as missing
	if notification == nil || notification.PatientID != actor.ID {
		return ErrNotificationNotFound
	}

	affected, err := u.notificationRepo.Delete(db, id)
	if err != nil {
		u.log.Warnf("Failed to delete notification %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func defaultNotification(patientID uint, notificationType string) entity.PatientNotification {
	return entity.PatientNotification{
		PatientID:            patientID,
		NotificationType:     notificationType,
		AppointmentReminders: true,
		AppointmentChanges:   true,
		MedicalUpdates:       false,
		IsEnabled:            true,
	}
}

func applyFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
