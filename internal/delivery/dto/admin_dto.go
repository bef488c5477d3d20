package dto

import "time"

// Request DTOs

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateAdminRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=255"`
	Username   string  `json:"username" validate:"required,min=3,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	ProfilePic *string `json:"profile_pic" validate:"omitempty,url"`
}

// Response DTOs

type AdminResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	ProfilePic *string   `json:"profile_pic,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AdminListResponse struct {
	Admins []AdminResponse `json:"admins"`
	Total  int             `json:"total"`
}
