package dto

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterPatientRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=255"`
	Username    string  `json:"username" validate:"required,min=3,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,date"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
}

// MeResponse carries the caller's profile; exactly one of Admin and Patient is set
type MeResponse struct {
	Role    string           `json:"role"`
	Admin   *AdminResponse   `json:"admin,omitempty"`
	Patient *PatientResponse `json:"patient,omitempty"`
}
