package usecase

import (
	"context"
	"errors"
	"strings"

	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"
	"healthcare-booking/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorUnavailable = errors.New("doctor is not taking appointments")
)

type DoctorUsecase interface {
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Get(ctx context.Context, id uint) (*dto.DoctorResponse, error)
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uint) error
	UpdateServiceDays(ctx context.Context, id uint, req *dto.UpdateServiceDaysRequest) (*dto.DoctorResponse, error)
	UpdateAvailabilityTimes(ctx context.Context, id uint, req *dto.UpdateAvailabilityTimesRequest) (*dto.DoctorResponse, error)
	UpdateStatus(ctx context.Context, id uint, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorResponse, error)
	UpdateBio(ctx context.Context, id uint, req *dto.UpdateBioRequest) (*dto.DoctorResponse, error)
	UpdateSpecialty(ctx context.Context, id uint, req *dto.UpdateSpecialtyRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository, auditService service.AuditService) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) Get(ctx context.Context, id uint) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{}
	applyDoctorRequest(doctor, req)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionDoctorCreate, "doctor", doctor.ID, doctor); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.logDiagnostics(doctor)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	return u.modify(ctx, id, func(d *entity.Doctor) {
		applyDoctorRequest(d, req)
	})
}

func (u *doctorUsecase) Delete(ctx context.Context, id uint) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	doctor, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.doctorRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionDoctorDelete, "doctor", id, doctor); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// UpdateServiceDays stores the text as given; the response carries any parse diagnostics
func (u *doctorUsecase) UpdateServiceDays(ctx context.Context, id uint, req *dto.UpdateServiceDaysRequest) (*dto.DoctorResponse, error) {
	return u.modify(ctx, id, func(d *entity.Doctor) {
		d.ServiceDays = optionalText(req.ServiceDays)
	})
}

func (u *doctorUsecase) UpdateAvailabilityTimes(ctx context.Context, id uint, req *dto.UpdateAvailabilityTimesRequest) (*dto.DoctorResponse, error) {
	return u.modify(ctx, id, func(d *entity.Doctor) {
		d.AvailabilityTimes = optionalText(req.AvailabilityTimes)
	})
}

func (u *doctorUsecase) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateDoctorStatusRequest) (*dto.DoctorResponse, error) {
	return u.modify(ctx, id, func(d *entity.Doctor) {
		d.Status = req.Status
	})
}

func (u *doctorUsecase) UpdateBio(ctx context.Context, id uint, req *dto.UpdateBioRequest) (*dto.DoctorResponse, error) {
	return u.modify(ctx, id, func(d *entity.Doctor) {
		d.Bio = optionalText(req.Bio)
	})
}

func (u *doctorUsecase) UpdateSpecialty(ctx context.Context, id uint, req *dto.UpdateSpecialtyRequest) (*dto.DoctorResponse, error) {
	return u.modify(ctx, id, func(d *entity.Doctor) {
		d.Specialty = optionalText(req.Specialty)
	})
}

// modify loads the doctor, applies change and saves it with an audit entry in one transaction
func (u *doctorUsecase) modify(ctx context.Context, id uint, change func(d *entity.Doctor)) (*dto.DoctorResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	before := converter.DoctorToResponse(doctor)

	change(doctor)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update doctor %d: %+v", id, err)
		return nil, err
	}

	after := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionDoctorUpdate, "doctor", id, before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.logDiagnostics(doctor)
	return after, nil
}

func (u *doctorUsecase) find(ctx context.Context, id uint) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *doctorUsecase) logDiagnostics(doctor *entity.Doctor) {
	_, diags := doctor.Schedule()
	for _, d := range diags {
		u.log.WithFields(logrus.Fields{
			"doctor_id": doctor.ID,
			"field":     d.Field,
			"value":     d.Value,
		}).Warn(d.Reason)
	}
}

func applyDoctorRequest(d *entity.Doctor, req *dto.CreateDoctorRequest) {
	d.FullName = strings.TrimSpace(req.FullName)
	d.Email = normalizeEmail(req.Email)
	d.Specialty = req.Specialty
	d.ServiceDays = req.ServiceDays
	d.AvailabilityTimes = req.AvailabilityTimes
	d.Bio = req.Bio
	if req.Status != "" {
		d.Status = req.Status
	} else if d.Status == "" {
		d.Status = entity.DoctorStatusActive
	}
}

// optionalText maps blank input to NULL
func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
