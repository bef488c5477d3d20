package usecase

import (
	"testing"

	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationUsecase_Upsert_Defaults(t *testing.T) {
	db, _ := newMockDB(t)
	repo := newFakeNotificationRepo()
	uc := NewNotificationUsecase(db, newTestLogger(), repo)

	res, err := uc.Upsert(patientCtx(3), &dto.UpsertNotificationRequest{NotificationType: entity.NotificationTypeSMS})
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, uint(3), res.PatientID)
	assert.True(t, res.AppointmentReminders)
	assert.True(t, res.AppointmentChanges)
	assert.False(t, res.MedicalUpdates)
	assert.True(t, res.IsEnabled)
}

func TestNotificationUsecase_Upsert_KeepsStoredFlags(t *testing.T) {
	db, _ := newMockDB(t)
	repo := newFakeNotificationRepo(&entity.PatientNotification{
		ID:               5,
		PatientID:        3,
		NotificationType: entity.NotificationTypeEmail,
		MedicalUpdates:   true,
		IsEnabled:        true,
	})
	uc := NewNotificationUsecase(db, newTestLogger(), repo)

	res, err := uc.Upsert(patientCtx(3), &dto.UpsertNotificationRequest{
		NotificationType: entity.NotificationTypeEmail,
		IsEnabled:        boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(5), res.ID)
	assert.True(t, res.MedicalUpdates)
	assert.False(t, res.AppointmentReminders)
	assert.False(t, res.IsEnabled)
	assert.Len(t, repo.notifications, 1)
}

func TestNotificationUsecase_Delete(t *testing.T) {
	db, _ := newMockDB(t)
	repo := newFakeNotificationRepo(
		&entity.PatientNotification{ID: 5, PatientID: 3, NotificationType: entity.NotificationTypeEmail},
		&entity.PatientNotification{ID: 6, PatientID: 4, NotificationType: entity.NotificationTypeEmail},
	)
	uc := NewNotificationUsecase(db, newTestLogger(), repo)

	assert.ErrorIs(t, uc.Delete(patientCtx(3), 6), ErrNotificationNotFound)
	assert.ErrorIs(t, uc.Delete(patientCtx(3), 99), ErrNotificationNotFound)
	require.NoError(t, uc.Delete(patientCtx(3), 5))

	mine, err := uc.GetMine(patientCtx(3))
	require.NoError(t, err)
	assert.Empty(t, mine)
}
