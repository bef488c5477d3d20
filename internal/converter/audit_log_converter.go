package converter

import (
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
)

// AuditLogsToResponses converts audit log entities to response DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i, l := range logs {
		responses[i] = dto.AuditLogResponse{
			ID:        l.ID,
			ActorRole: l.ActorRole,
			ActorID:   l.ActorID,
			Action:    l.Action,
			Metadata:  l.Metadata,
			CreatedAt: l.CreatedAt,
		}
	}
	return responses
}
