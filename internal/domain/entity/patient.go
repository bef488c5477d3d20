package entity

import "time"

// Patient account status values
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
)

// Patient is a patient account and its contact profile
type Patient struct {
	ID                   uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName             string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Username             string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email                string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password             string     `gorm:"type:text;not null" json:"-"`
	ProfilePic           *string    `gorm:"type:text" json:"profile_pic,omitempty"`
	PhoneNumber          *string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth          *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender               *string    `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Address              *string    `gorm:"type:text" json:"address,omitempty"`
	EmergencyContactName *string    `gorm:"type:varchar(255)" json:"emergency_contact_name,omitempty"`
	EmergencyContact     *string    `gorm:"type:varchar(20)" json:"emergency_contact,omitempty"`
	AccountStatus        string     `gorm:"type:varchar(20);not null;default:'active'" json:"account_status"`
	CreatedAt            time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Notifications []PatientNotification `gorm:"foreignKey:PatientID" json:"notifications,omitempty"`
	Appointments  []Appointment         `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsActive reports whether the patient may sign in
func (p *Patient) IsActive() bool {
	return p.AccountStatus == AccountStatusActive
}
