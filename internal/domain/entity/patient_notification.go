package entity

// Notification channels
const (
	NotificationTypeEmail = "email"
	NotificationTypeSMS   = "sms"
	NotificationTypePush  = "push"
)

// PatientNotification stores a patient's preferences for one notification channel
type PatientNotification struct {
	ID                   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID            uint   `gorm:"not null;uniqueIndex:idx_patient_notification_type" json:"patient_id"`
	NotificationType     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_patient_notification_type" json:"notification_type"`
	AppointmentReminders bool   `gorm:"not null" json:"appointment_reminders"`
	AppointmentChanges   bool   `gorm:"not null" json:"appointment_changes"`
	MedicalUpdates       bool   `gorm:"not null" json:"medical_updates"`
	IsEnabled            bool   `gorm:"not null" json:"is_enabled"`
}

func (PatientNotification) TableName() string {
	return "patient_notifications"
}
