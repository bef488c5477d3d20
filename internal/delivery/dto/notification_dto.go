package dto

// Request DTOs

// UpsertNotificationRequest leaves absent flags at their defaults on first save
type UpsertNotificationRequest struct {
	NotificationType     string `json:"notification_type" validate:"required,oneof=email sms push"`
	AppointmentReminders *bool  `json:"appointment_reminders"`
	AppointmentChanges   *bool  `json:"appointment_changes"`
	MedicalUpdates       *bool  `json:"medical_updates"`
	IsEnabled            *bool  `json:"is_enabled"`
}

// Response DTOs

type NotificationResponse struct {
	ID                   uint   `json:"id"`
	PatientID            uint   `json:"patient_id"`
	NotificationType     string `json:"notification_type"`
	AppointmentReminders bool   `json:"appointment_reminders"`
	AppointmentChanges   bool   `json:"appointment_changes"`
	MedicalUpdates       bool   `json:"medical_updates"`
	IsEnabled            bool   `json:"is_enabled"`
}
