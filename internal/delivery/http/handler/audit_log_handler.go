package handler

import (
	"net/http"
	"strconv"

	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/service"
	"healthcare-booking/pkg/response"
)

const (
	defaultAuditLogLimit = 50
	maxAuditLogLimit     = 500
)

type AuditLogHandler struct {
	auditService service.AuditService
}

func NewAuditLogHandler(auditService service.AuditService) *AuditLogHandler {
	return &AuditLogHandler{
		auditService: auditService,
	}
}

// GetAllAuditLogs returns the newest audit entries. ?limit caps the count.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			response.BadRequest(w, "Invalid limit")
			return
		}
		limit = min(n, maxAuditLogLimit)
	}

	logs, err := h.auditService.Recent(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	responses := converter.AuditLogsToResponses(logs)
	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", dto.AuditLogListResponse{
		Logs:  responses,
		Total: len(responses),
	})
}
