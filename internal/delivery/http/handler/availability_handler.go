package handler

import (
	"errors"
	"net/http"

	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/response"

	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailableDays lists the doctor's bookable dates
// @Summary Get available days
// @Description Dates from today through the booking horizon on the doctor's service days
// @Tags Availability
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailableDays(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	days, err := h.availabilityUsecase.GetAvailableDays(r.Context(), id)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to get available days")
		return
	}

	response.Success(w, http.StatusOK, "Available days retrieved successfully", days)
}

// GetAvailableSlots lists free slots for one date
// @Summary Get available slots
// @Description Free one-hour slots of the doctor on the given date
// @Tags Availability
// @Produce json
// @Param id path int true "Doctor ID"
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /doctors/{id}/availability/{date} [get]
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	slots, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), id, mux.Vars(r)["date"])
	if err != nil {
		writeAvailabilityError(w, err, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *AvailabilityHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	booked, err := h.availabilityUsecase.GetBookedSlots(r.Context(), id)
	if err != nil {
		writeAvailabilityError(w, err, "Failed to get booked slots")
		return
	}

	response.Success(w, http.StatusOK, "Booked slots retrieved successfully", booked)
}

func writeAvailabilityError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrAvailabilityUnknown):
		response.ServiceUnavailable(w, "Doctor availability is temporarily unavailable, please try again")
	default:
		response.InternalServerError(w, fallback)
	}
}
