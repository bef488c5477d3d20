package handler

import (
	"net/http"

	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/response"
)

type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
}

func NewStatsHandler(statsUsecase usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
	}
}

func (h *StatsHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUsecase.Dashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *StatsHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUsecase.Monthly(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get monthly stats")
		return
	}

	response.Success(w, http.StatusOK, "Monthly stats retrieved successfully", stats)
}

func (h *StatsHandler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUsecase.PatientStats(r.Context())
	if err != nil {
		if err == usecase.ErrUnauthenticated {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.InternalServerError(w, "Failed to get appointment stats")
		return
	}

	response.Success(w, http.StatusOK, "Appointment stats retrieved successfully", stats)
}

func (h *StatsHandler) GetMyMonthly(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUsecase.PatientMonthly(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to get monthly stats")
		}
		return
	}

	response.Success(w, http.StatusOK, "Monthly stats retrieved successfully", stats)
}
