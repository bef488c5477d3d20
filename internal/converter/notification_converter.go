package converter

import (
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
)

func NotificationToResponse(n *entity.PatientNotification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}

	return &dto.NotificationResponse{
		ID:                   n.ID,
		PatientID:            n.PatientID,
		NotificationType:     n.NotificationType,
		AppointmentReminders: n.AppointmentReminders,
		AppointmentChanges:   n.AppointmentChanges,
		MedicalUpdates:       n.MedicalUpdates,
		IsEnabled:            n.IsEnabled,
	}
}

func NotificationsToResponses(notifications []entity.PatientNotification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *NotificationToResponse(&notifications[i])
	}
	return responses
}
