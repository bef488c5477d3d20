package usecase

import (
	"context"
	"errors"
	"time"

	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"
	"healthcare-booking/internal/metrics"
	"healthcare-booking/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentNotOwned         = errors.New("appointment does not belong to you")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentCompleted        = errors.New("appointment is already completed")
	ErrInvalidAppointmentStatus    = errors.New("invalid appointment status")
)

const (
	recentAppointmentsLimit = 5

	holdReleaseTimeout = 5 * time.Second
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	Reschedule(ctx context.Context, id uint, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uint, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)

	List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Get(ctx context.Context, id uint) (*dto.AppointmentResponse, error)
	Recent(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id uint, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	UpdateNotes(ctx context.Context, id uint, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	slotHolds       *service.SlotHoldService
	auditService    service.AuditService
	clock           Clock
	metrics         *metrics.BookingMetrics
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	slotHolds *service.SlotHoldService,
	auditService service.AuditService,
	clock Clock,
	metrics *metrics.BookingMetrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		slotHolds:       slotHolds,
		auditService:    auditService,
		clock:           clock,
		metrics:         metrics,
	}
}

// Create books a slot for the calling patient.
//
// Flow:
// 1. Parse the date and slot, load the doctor
// 2. Hold the slot in Redis so concurrent requests for it queue behind this one
// 3. Load booked slots and validate the submission against the doctor's availability
// 4. Insert; a unique violation on the doctor slot index means the slot was taken
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	date, err := u.clock.parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	label, clock, err := parseSlot(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       actor.ID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		AppointmentTime: clock,
		AppointmentType: req.AppointmentType,
		ReasonForVisit:  req.ReasonForVisit,
		Status:          entity.AppointmentStatusScheduled,
	}

	err = u.bookSlot(ctx, req.DoctorID, date, label, clock, 0, func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		u.metrics.ObserveBooking("create", bookingOutcome(err))
		return nil, err
	}
	u.metrics.ObserveBooking("create", "booked")

	u.log.Infof("Appointment created: id=%d, doctor=%d, date=%s, time=%s", appointment.ID, appointment.DoctorID, req.AppointmentDate, clock)
	return u.reload(ctx, appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), &entity.AppointmentFilter{PatientID: actor.ID})
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", actor.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Reschedule moves the patient's appointment to another free slot of the same doctor.
// The appointment's current slot counts as free while validating the move.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id uint, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := checkChangeable(appointment); err != nil {
		return nil, err
	}

	date, err := u.clock.parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	label, clock, err := parseSlot(req.AppointmentTime)
	if err != nil {
		return nil, err
	}

	before := converter.AppointmentToResponse(appointment)
	appointment.Reschedule(date, clock, req.Reason)

	err = u.bookSlot(ctx, appointment.DoctorID, date, label, clock, appointment.ID, func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID, before, converter.AppointmentToResponse(appointment))
	})
	if err != nil {
		u.metrics.ObserveBooking("reschedule", bookingOutcome(err))
		return nil, err
	}
	u.metrics.ObserveBooking("reschedule", "booked")

	return u.reload(ctx, appointment), nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, id uint, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	appointment, err := u.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := checkChangeable(appointment); err != nil {
		return nil, err
	}

	oldStatus := appointment.Status
	appointment.Cancel(req.Reason)

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			u.log.Warnf("Failed to cancel appointment %d: %+v", id, err)
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentCancel, "appointment", id, oldStatus, appointment.Status)
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) Get(ctx context.Context, id uint) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Recent(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindRecent(u.db.WithContext(ctx), recentAppointmentsLimit)
	if err != nil {
		u.log.Warnf("Failed to find recent appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateStatus sets any lifecycle status. Reviving a cancelled appointment whose slot was
// rebooked fails with ErrSlotTaken.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uint, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	status, ok := entity.ParseAppointmentStatus(req.Status)
	if !ok {
		return nil, ErrInvalidAppointmentStatus
	}

	appointment, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := appointment.Status
	appointment.Status = status

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			if isDuplicateKeyError(err, slotUniqueIndex) {
				return ErrSlotTaken
			}
			u.log.Warnf("Failed to update status of appointment %d: %+v", id, err)
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentStatus, "appointment", id, oldStatus, status)
	})
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateNotes(ctx context.Context, id uint, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	appointment.Notes = optionalText(req.Notes)

	if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
		u.log.Warnf("Failed to update notes of appointment %d: %+v", id, err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uint) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	return u.inTx(ctx, func(tx *gorm.DB) error {
		affected, err := u.appointmentRepo.Delete(tx, id)
		if err != nil {
			u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
			return err
		}
		if affected == 0 {
			return ErrAppointmentNotFound
		}
		return u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAppointmentDelete, "appointment", id, nil)
	})
}

// bookSlot validates that the slot is bookable and runs write inside a transaction while
// holding the slot. excludeID is the appointment being moved, if any.
func (u *appointmentUsecase) bookSlot(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	label, clock string,
	excludeID uint,
	write func(tx *gorm.DB) error,
) error {
	doctor, err := findDoctor(ctx, u.db, u.log, u.doctorRepo, doctorID)
	if err != nil {
		return err
	}
	if !doctor.IsActive() {
		return ErrDoctorUnavailable
	}

	hold, err := u.slotHolds.Acquire(ctx, doctorID, date, clock)
	switch {
	case errors.Is(err, service.ErrSlotHeld):
		return ErrSlotTaken
	case err != nil:
		// The unique index still guards the write without the hold
		u.log.Warnf("Booking doctor %d without slot hold: %+v", doctorID, err)
	default:
		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), holdReleaseTimeout)
			defer cancel()
			if err := u.slotHolds.Release(releaseCtx, hold); err != nil {
				u.log.Warnf("Failed to release slot hold %s: %+v", hold.Key, err)
			}
		}()
	}

	today := u.clock.today()
	booked, err := loadBookedSlots(ctx, u.db, u.log, u.appointmentRepo, doctorID, today, excludeID)
	if err != nil {
		return err
	}

	cfg, _ := doctor.Schedule()
	if err := availability.ValidateBooking(cfg, today, availability.Submission{Date: date, Slot: label}, booked); err != nil {
		return err
	}
	if len(availability.DropElapsed(date, []string{label}, u.clock.now())) == 0 {
		return availability.ErrSlotUnavailable
	}

	return u.inTx(ctx, func(tx *gorm.DB) error {
		if err := write(tx); err != nil {
			if isDuplicateKeyError(err, slotUniqueIndex) {
				return ErrSlotTaken
			}
			if isForeignKeyError(err, "doctor") {
				return ErrDoctorNotFound
			}
			if isForeignKeyError(err, "patient") {
				return ErrPatientNotFound
			}
			u.log.Warnf("Failed to write appointment: %+v", err)
			return err
		}
		return nil
	})
}

func (u *appointmentUsecase) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) find(ctx context.Context, id uint) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

func (u *appointmentUsecase) findOwned(ctx context.Context, actor entity.Actor, id uint) (*entity.Appointment, error) {
	appointment, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.PatientID != actor.ID {
		return nil, ErrAppointmentNotOwned
	}
	return appointment, nil
}

// reload returns the stored appointment with patient and doctor, or the given one if reloading fails
func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) *dto.AppointmentResponse {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment)
	}
	return converter.AppointmentToResponse(full)
}

func checkChangeable(appointment *entity.Appointment) error {
	if appointment.IsCancelled() {
		return ErrAppointmentAlreadyCancelled
	}
	if appointment.IsCompleted() {
		return ErrAppointmentCompleted
	}
	return nil
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	case errors.Is(err, availability.ErrDateUnavailable), errors.Is(err, availability.ErrSlotUnavailable):
		return "rejected"
	case errors.Is(err, ErrAvailabilityUnknown):
		return "unavailable"
	default:
		return "error"
	}
}
