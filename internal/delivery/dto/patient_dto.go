package dto

import "time"

// Request DTOs

// UpdatePatientRequest only changes the fields that are present
type UpdatePatientRequest struct {
	FullName             *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Email                *string `json:"email" validate:"omitempty,email"`
	PhoneNumber          *string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	ProfilePic           *string `json:"profile_pic" validate:"omitempty,url"`
	Address              *string `json:"address" validate:"omitempty,max=500"`
	DateOfBirth          *string `json:"date_of_birth" validate:"omitempty,date"`
	Gender               *string `json:"gender" validate:"omitempty,oneof=male female other"`
	EmergencyContact     *string `json:"emergency_contact" validate:"omitempty,max=20"`
	EmergencyContactName *string `json:"emergency_contact_name" validate:"omitempty,max=255"`
}

type UpdateAccountStatusRequest struct {
	AccountStatus string `json:"account_status" validate:"required,oneof=active suspended"`
}

// Response DTOs

type PatientResponse struct {
	ID                   uint      `json:"id"`
	FullName             string    `json:"full_name"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	ProfilePic           *string   `json:"profile_pic,omitempty"`
	PhoneNumber          *string   `json:"phone_number,omitempty"`
	DateOfBirth          string    `json:"date_of_birth,omitempty"`
	Gender               *string   `json:"gender,omitempty"`
	Address              *string   `json:"address,omitempty"`
	EmergencyContactName *string   `json:"emergency_contact_name,omitempty"`
	EmergencyContact     *string   `json:"emergency_contact,omitempty"`
	AccountStatus        string    `json:"account_status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
