package usecase

import (
	"context"
	"time"

	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const monthsPerYear = 12

type StatsUsecase interface {
	Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error)
	Monthly(ctx context.Context) ([]dto.MonthlyAppointmentsResponse, error)
	PatientStats(ctx context.Context) (*dto.PatientStatsResponse, error)
	PatientMonthly(ctx context.Context) ([]dto.MonthlyAppointmentsResponse, error)
}

type statsUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	clock           Clock
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	clock Clock,
) StatsUsecase {
	return &statsUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		clock:           clock,
	}
}

// dashboardCounts holds the raw numbers behind the dashboard
type dashboardCounts struct {
	patients, lastPatients                   int64
	doctors, lastDoctors                     int64
	appointments                             int64
	monthAppointments, lastMonthAppointments int64
	activeDoctors, lastActiveDoctors         int64
}

// Dashboard compares the current month against the previous one.
// Users counted for last month are those created before this month started.
func (u *statsUsecase) Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	db := u.db.WithContext(ctx)

	monthStart := startOfMonth(u.clock.now())
	nextMonth := monthStart.AddDate(0, 1, 0)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	var c dashboardCounts
	steps := []struct {
		name string
		run  func() (int64, error)
		dst  *int64
	}{
		{"patients", func() (int64, error) { return u.patientRepo.Count(db) }, &c.patients},
		{"patients before month", func() (int64, error) { return u.patientRepo.CountCreatedBefore(db, monthStart) }, &c.lastPatients},
		{"doctors", func() (int64, error) { return u.doctorRepo.Count(db) }, &c.doctors},
		{"doctors before month", func() (int64, error) { return u.doctorRepo.CountCreatedBefore(db, monthStart) }, &c.lastDoctors},
		{"appointments", func() (int64, error) { return u.appointmentRepo.Count(db) }, &c.appointments},
		{"appointments this month", func() (int64, error) { return u.appointmentRepo.CountBetween(db, monthStart, nextMonth) }, &c.monthAppointments},
		{"appointments last month", func() (int64, error) { return u.appointmentRepo.CountBetween(db, lastMonthStart, monthStart) }, &c.lastMonthAppointments},
		{"active doctors this month", func() (int64, error) {
			return u.appointmentRepo.CountActiveDoctorsBetween(db, monthStart, nextMonth)
		}, &c.activeDoctors},
		{"active doctors last month", func() (int64, error) {
			return u.appointmentRepo.CountActiveDoctorsBetween(db, lastMonthStart, monthStart)
		}, &c.lastActiveDoctors},
	}
	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			u.log.Warnf("Failed to count %s: %+v", step.name, err)
			return nil, err
		}
		*step.dst = n
	}

	return buildDashboard(c), nil
}

func buildDashboard(c dashboardCounts) *dto.DashboardStatsResponse {
	users := c.patients + c.doctors
	lastUsers := c.lastPatients + c.lastDoctors

	rate := percentOf(c.monthAppointments, users)
	lastRate := percentOf(c.lastMonthAppointments, lastUsers)

	return &dto.DashboardStatsResponse{
		TotalUsers:        users,
		TotalPatients:     c.patients,
		TotalDoctors:      c.doctors,
		TotalAppointments: c.appointments,
		ActiveDoctors:     c.activeDoctors,
		AppointmentRate:   rate.InexactFloat64(),
		Growth: dto.GrowthResponse{
			UsersGrowth:           growth(decimal.NewFromInt(users), decimal.NewFromInt(lastUsers)),
			PatientsGrowth:        growth(decimal.NewFromInt(c.patients), decimal.NewFromInt(c.lastPatients)),
			DoctorsGrowth:         growth(decimal.NewFromInt(c.doctors), decimal.NewFromInt(c.lastDoctors)),
			AppointmentsGrowth:    growth(decimal.NewFromInt(c.monthAppointments), decimal.NewFromInt(c.lastMonthAppointments)),
			ActiveDoctorsGrowth:   growth(decimal.NewFromInt(c.activeDoctors), decimal.NewFromInt(c.lastActiveDoctors)),
			AppointmentRateGrowth: growth(rate, lastRate),
		},
	}
}

// Monthly returns one entry per month of the current year, zero-filled
func (u *statsUsecase) Monthly(ctx context.Context) ([]dto.MonthlyAppointmentsResponse, error) {
	year := u.clock.now().Year()

	counts, err := u.appointmentRepo.CountByMonth(u.db.WithContext(ctx), year)
	if err != nil {
		u.log.Warnf("Failed to count appointments by month: %+v", err)
		return nil, err
	}

	byMonth := make(map[int]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}

	result := make([]dto.MonthlyAppointmentsResponse, monthsPerYear)
	for i := range result {
		month := time.Month(i + 1)
		result[i] = dto.MonthlyAppointmentsResponse{
			Month:        monthLabel(month),
			Appointments: byMonth[int(month)],
		}
	}
	return result, nil
}

// PatientStats summarises the caller's appointments. Upcoming covers scheduled and
// rescheduled appointments dated after today.
func (u *statsUsecase) PatientStats(ctx context.Context) (*dto.PatientStatsResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	stats := &dto.PatientStatsResponse{}

	stats.TotalAppointments, err = u.appointmentRepo.CountByPatient(db, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to count appointments for patient %d: %+v", actor.ID, err)
		return nil, err
	}

	today := u.clock.today()
	upcoming, err := u.appointmentRepo.FindByPatientAndStatuses(db, actor.ID,
		[]entity.AppointmentStatus{entity.AppointmentStatusScheduled, entity.AppointmentStatusRescheduled}, &today)
	if err != nil {
		u.log.Warnf("Failed to find upcoming appointments for patient %d: %+v", actor.ID, err)
		return nil, err
	}
	stats.UpcomingAppointmentsCount = len(upcoming)
	if len(upcoming) > 0 {
		stats.NextUpcomingDate = upcoming[0].AppointmentDate.Format(dateLayout)
	}

	completed, err := u.appointmentRepo.FindByPatientAndStatuses(db, actor.ID,
		[]entity.AppointmentStatus{entity.AppointmentStatusCompleted}, nil)
	if err != nil {
		u.log.Warnf("Failed to find completed appointments for patient %d: %+v", actor.ID, err)
		return nil, err
	}
	stats.CompletedAppointmentsCount = len(completed)
	if len(completed) > 0 {
		stats.LastCompletedDate = completed[0].AppointmentDate.Format(dateLayout)
	}

	top, err := u.appointmentRepo.TopDoctorForPatient(db, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find top doctor for patient %d: %+v", actor.ID, err)
		return nil, err
	}
	if top != nil {
		stats.TopDoctorAppointments = top.Count
		doctor, err := u.doctorRepo.FindByID(db, top.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %d: %+v", top.DoctorID, err)
			return nil, err
		}
		if doctor != nil {
			stats.TopDoctorName = doctor.FullName
		}
	}

	return stats, nil
}

// PatientMonthly counts the caller's appointments for the twelve months starting with
// the month the account was created
func (u *statsUsecase) PatientMonthly(ctx context.Context) ([]dto.MonthlyAppointmentsResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", actor.ID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	start := startOfMonth(patient.CreatedAt.In(u.clock.now().Location()))
	result := make([]dto.MonthlyAppointmentsResponse, monthsPerYear)
	for i := range result {
		from := start.AddDate(0, i, 0)
		to := from.AddDate(0, 1, 0)

		count, err := u.appointmentRepo.CountByPatientBetween(db, actor.ID, from, to)
		if err != nil {
			u.log.Warnf("Failed to count appointments for patient %d: %+v", actor.ID, err)
			return nil, err
		}
		result[i] = dto.MonthlyAppointmentsResponse{
			Month:        monthLabel(from.Month()),
			Appointments: count,
		}
	}
	return result, nil
}

var hundred = decimal.NewFromInt(100)

// growth is the percentage change from previous to current, rounded to two places.
// From zero it is 100 when anything appeared and 0 otherwise.
func growth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.GreaterThan(decimal.Zero) {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2).InexactFloat64()
}

// percentOf returns part/whole*100 rounded to two places, or zero for an empty whole
func percentOf(part, whole int64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Div(decimal.NewFromInt(whole)).Mul(hundred).Round(2)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthLabel(m time.Month) string {
	return m.String()[:3]
}
