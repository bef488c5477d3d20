package converter

import (
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:                   patient.ID,
		FullName:             patient.FullName,
		Username:             patient.Username,
		Email:                patient.Email,
		ProfilePic:           patient.ProfilePic,
		PhoneNumber:          patient.PhoneNumber,
		Gender:               patient.Gender,
		Address:              patient.Address,
		EmergencyContactName: patient.EmergencyContactName,
		EmergencyContact:     patient.EmergencyContact,
		AccountStatus:        patient.AccountStatus,
		CreatedAt:            patient.CreatedAt,
		UpdatedAt:            patient.UpdatedAt,
	}

	if patient.DateOfBirth != nil {
		response.DateOfBirth = patient.DateOfBirth.Format(dateLayout)
	}

	return response
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
