package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"
	"healthcare-booking/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

const latestPatientsLimit = 5

type PatientUsecase interface {
	List(ctx context.Context) (*dto.PatientListResponse, error)
	Get(ctx context.Context, id uint) (*dto.PatientResponse, error)
	Latest(ctx context.Context) (*dto.PatientListResponse, error)
	Delete(ctx context.Context, id uint) error
	UpdateAccountStatus(ctx context.Context, id uint, req *dto.UpdateAccountStatusRequest) (*dto.PatientResponse, error)
	UpdateMe(ctx context.Context, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	ChangeMyPassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	authUsecase  AuthUsecase
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	authUsecase AuthUsecase,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		authUsecase:  authUsecase,
		auditService: auditService,
	}
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) Get(ctx context.Context, id uint) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

// Latest returns the most recently registered patients
func (u *patientUsecase) Latest(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindLatest(u.db.WithContext(ctx), latestPatientsLimit)
	if err != nil {
		u.log.Warnf("Failed to find latest patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) Delete(ctx context.Context, id uint) error {
	affected, err := u.patientRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	if err := u.authUsecase.RevokeAllTokens(ctx, entity.RolePatient, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted patient %d: %+v", id, err)
	}
	return nil
}

// UpdateAccountStatus activates or suspends a patient. Suspension signs the patient out everywhere.
func (u *patientUsecase) UpdateAccountStatus(ctx context.Context, id uint, req *dto.UpdateAccountStatusRequest) (*dto.PatientResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := patient.AccountStatus

	if _, err := u.patientRepo.UpdateAccountStatus(u.db.WithContext(ctx), id, req.AccountStatus); err != nil {
		u.log.Warnf("Failed to update account status of patient %d: %+v", id, err)
		return nil, err
	}
	patient.AccountStatus = req.AccountStatus

	if req.AccountStatus == entity.AccountStatusSuspended {
		if err := u.authUsecase.RevokeAllTokens(ctx, entity.RolePatient, id); err != nil {
			u.log.Warnf("Failed to revoke tokens of suspended patient %d: %+v", id, err)
		}
	}

	if err := u.auditService.LogUpdate(ctx, nil, actor, entity.AuditActionPatientStatus, "patient", id, oldStatus, req.AccountStatus); err != nil {
		u.log.Warnf("Failed to audit account status change of patient %d: %+v", id, err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdateMe(ctx context.Context, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	patient, err := u.find(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = &dob
	}
	if req.FullName != nil {
		patient.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		patient.Email = normalizeEmail(*req.Email)
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.ProfilePic != nil {
		patient.ProfilePic = req.ProfilePic
	}
	if req.Address != nil {
		patient.Address = req.Address
	}
	if req.Gender != nil {
		patient.Gender = req.Gender
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = req.EmergencyContact
	}
	if req.EmergencyContactName != nil {
		patient.EmergencyContactName = req.EmergencyContactName
	}

	if err := u.patientRepo.Update(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ChangeMyPassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	patient, err := u.find(ctx, actor.ID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	patient.Password = hashedPassword

	if err := u.patientRepo.Update(u.db.WithContext(ctx), patient); err != nil {
		u.log.Warnf("Failed to update patient password: %+v", err)
		return err
	}

	return nil
}

func (u *patientUsecase) find(ctx context.Context, id uint) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}
