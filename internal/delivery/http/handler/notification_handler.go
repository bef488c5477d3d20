package handler

import (
	"net/http"

	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/response"
	"healthcare-booking/pkg/validator"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationUsecase.GetMine(r.Context())
	if err != nil {
		if err == usecase.ErrUnauthenticated {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.InternalServerError(w, "Failed to get notification preferences")
		return
	}

	response.Success(w, http.StatusOK, "Notification preferences retrieved successfully", notifications)
}

func (h *NotificationHandler) UpsertMyNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertNotificationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	notification, err := h.notificationUsecase.Upsert(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to save notification preferences")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification preferences saved successfully", notification)
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification preference not found")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to delete notification preference")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification preference deleted successfully", nil)
}
