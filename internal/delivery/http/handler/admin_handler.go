package handler

import (
	"net/http"

	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/response"
	"healthcare-booking/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) GetAllAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get admins")
		return
	}

	response.Success(w, http.StatusOK, "Admins retrieved successfully", admins)
}

func (h *AdminHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}

	admin, err := h.adminUsecase.Get(r.Context(), id)
	if err != nil {
		if err == usecase.ErrAdminNotFound {
			response.NotFound(w, "Admin not found")
			return
		}
		response.InternalServerError(w, "Failed to get admin")
		return
	}

	response.Success(w, http.StatusOK, "Admin retrieved successfully", admin)
}

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdminRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	admin, err := h.adminUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrUsernameAlreadyExists:
			response.Conflict(w, "Username already exists")
		default:
			response.InternalServerError(w, "Failed to create admin")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Admin created successfully", admin)
}

func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}

	var req dto.UpdateAdminRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	admin, err := h.adminUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrUsernameAlreadyExists:
			response.Conflict(w, "Username already exists")
		default:
			response.InternalServerError(w, "Failed to update admin")
		}
		return
	}

	response.Success(w, http.StatusOK, "Admin updated successfully", admin)
}

func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}

	if err := h.adminUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		case usecase.ErrCannotDeleteSelf:
			response.Forbidden(w, "You cannot delete your own account")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to delete admin")
		}
		return
	}

	response.Success(w, http.StatusOK, "Admin deleted successfully", nil)
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "admin")
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.adminUsecase.ChangePassword(r.Context(), id, &req); err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		case usecase.ErrNotAccountOwner:
			response.Forbidden(w, "You can only change your own password")
		case usecase.ErrWrongPassword:
			response.BadRequest(w, "Old password does not match")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}
