package usecase

import (
	"context"
	"fmt"
	"time"

	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"
	"healthcare-booking/internal/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	GetAvailableDays(ctx context.Context, doctorID uint) (*dto.AvailableDaysResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID uint, date string) (*dto.AvailableSlotsResponse, error)
	GetBookedSlots(ctx context.Context, doctorID uint) (*dto.BookedSlotListResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	clock           Clock
	metrics         *metrics.BookingMetrics
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	clock Clock,
	metrics *metrics.BookingMetrics,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		clock:           clock,
		metrics:         metrics,
	}
}

// GetAvailableDays lists the doctor's bookable dates in the horizon. Doctors who are not
// active have none.
func (u *availabilityUsecase) GetAvailableDays(ctx context.Context, doctorID uint) (*dto.AvailableDaysResponse, error) {
	doctor, err := findDoctor(ctx, u.db, u.log, u.doctorRepo, doctorID)
	if err != nil {
		u.metrics.ObserveAvailability("days", "error")
		return nil, err
	}

	cfg, diags := doctor.Schedule()
	today := u.clock.today()

	days := []time.Time{}
	if doctor.IsActive() {
		days = cfg.Days(today)
	}

	u.metrics.ObserveAvailability("days", "ok")
	return &dto.AvailableDaysResponse{
		DoctorID:    doctor.ID,
		Today:       today.Format(dateLayout),
		HorizonDays: availability.HorizonDays,
		Days:        converter.DaysToResponses(days),
		Schedule:    converter.ScheduleToResponse(cfg, diags),
	}, nil
}

// GetAvailableSlots lists the free slots of one date. A date outside the doctor's bookable
// days has no slots. If booked appointments cannot be loaded no slot is offered.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uint, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := u.clock.parseDate(date)
	if err != nil {
		return nil, err
	}

	doctor, err := findDoctor(ctx, u.db, u.log, u.doctorRepo, doctorID)
	if err != nil {
		u.metrics.ObserveAvailability("slots", "error")
		return nil, err
	}

	result := &dto.AvailableSlotsResponse{
		DoctorID: doctor.ID,
		Date:     day.Format(dateLayout),
		Slots:    []dto.SlotResponse{},
	}

	cfg, _ := doctor.Schedule()
	today := u.clock.today()
	if !doctor.IsActive() || !availability.IsAvailableDay(cfg.ServiceDays, today, day) {
		u.metrics.ObserveAvailability("slots", "ok")
		u.metrics.ObserveSlotsOffered(0)
		return result, nil
	}

	booked, err := loadBookedSlots(ctx, u.db, u.log, u.appointmentRepo, doctor.ID, today, 0)
	if err != nil {
		u.metrics.ObserveAvailability("slots", "unavailable")
		return nil, err
	}

	free := availability.DropElapsed(day, cfg.FreeSlots(day, booked), u.clock.now())
	result.Slots = converter.SlotsToResponses(free)

	u.metrics.ObserveAvailability("slots", "ok")
	u.metrics.ObserveSlotsOffered(len(result.Slots))
	return result, nil
}

// GetBookedSlots lists the doctor's slots held by non-cancelled appointments from today on
func (u *availabilityUsecase) GetBookedSlots(ctx context.Context, doctorID uint) (*dto.BookedSlotListResponse, error) {
	doctor, err := findDoctor(ctx, u.db, u.log, u.doctorRepo, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := loadBookedSlots(ctx, u.db, u.log, u.appointmentRepo, doctor.ID, u.clock.today(), 0)
	if err != nil {
		return nil, err
	}

	return &dto.BookedSlotListResponse{
		DoctorID: doctor.ID,
		Booked:   converter.BookedSlotsToResponses(booked),
	}, nil
}

func findDoctor(ctx context.Context, db *gorm.DB, log *logrus.Logger, repo repository.DoctorRepository, id uint) (*entity.Doctor, error) {
	doctor, err := repo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// loadBookedSlots fetches the doctor's blocking appointments from the given day on, leaving out
// excludeID (0 excludes nothing). Any fetch failure is reported as ErrAvailabilityUnknown.
func loadBookedSlots(
	ctx context.Context,
	db *gorm.DB,
	log *logrus.Logger,
	repo repository.AppointmentRepository,
	doctorID uint,
	from time.Time,
	excludeID uint,
) ([]availability.BookedSlot, error) {
	appointments, err := repo.FindBookedByDoctor(db.WithContext(ctx), doctorID, from)
	if err != nil {
		log.Warnf("Failed to load booked appointments of doctor %d: %+v", doctorID, err)
		return nil, fmt.Errorf("%w: %v", ErrAvailabilityUnknown, err)
	}

	booked := converter.BookedSlotsFromAppointments(appointments)
	if excludeID == 0 {
		return booked, nil
	}

	kept := booked[:0]
	for _, b := range booked {
		if b.AppointmentID != excludeID {
			kept = append(kept, b)
		}
	}
	return kept, nil
}
