package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"healthcare-booking/internal/delivery/http/middleware"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// fixedClock pins now to the given instant in UTC
func fixedClock(now time.Time) Clock {
	return Clock{Location: time.UTC, Now: func() time.Time { return now }}
}

func patientCtx(id uint) context.Context {
	return middleware.WithActor(context.Background(), entity.Actor{Role: entity.RolePatient, ID: id})
}

func adminCtx(id uint) context.Context {
	return middleware.WithActor(context.Background(), entity.Actor{Role: entity.RoleAdmin, ID: id})
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeDoctorRepo

type fakeDoctorRepo struct {
	doctors map[uint]*entity.Doctor
	err     error
	nextID  uint
	count   int64
	before  int64
}

func newFakeDoctorRepo(doctors ...*entity.Doctor) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: map[uint]*entity.Doctor{}, nextID: 100}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	doctor.ID = r.nextID
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(db *gorm.DB, id uint) (*entity.Doctor, error) {
	if r.err != nil {
		return nil, r.err
	}
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var all []entity.Doctor
	for _, d := range r.doctors {
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, r.err
}

func (r *fakeDoctorRepo) Update(db *gorm.DB, doctor *entity.Doctor) error {
	if r.err != nil {
		return r.err
	}
	clone := *doctor
	r.doctors[doctor.ID] = &clone
	return nil
}

func (r *fakeDoctorRepo) Delete(db *gorm.DB, id uint) (int64, error) {
	if _, ok := r.doctors[id]; !ok {
		return 0, r.err
	}
	delete(r.doctors, id)
	return 1, r.err
}

func (r *fakeDoctorRepo) Count(db *gorm.DB) (int64, error) { return r.count, r.err }

func (r *fakeDoctorRepo) CountCreatedBefore(db *gorm.DB, before time.Time) (int64, error) {
	return r.before, r.err
}

// fakePatientRepo

type fakePatientRepo struct {
	patients map[uint]*entity.Patient
	err      error
	nextID   uint
	count    int64
	before   int64
}

func newFakePatientRepo(patients ...*entity.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: map[uint]*entity.Patient{}, nextID: 100}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *fakePatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	patient.ID = r.nextID
	clone := *patient
	r.patients[patient.ID] = &clone
	return nil
}

func (r *fakePatientRepo) FindByID(db *gorm.DB, id uint) (*entity.Patient, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *fakePatientRepo) FindByEmail(db *gorm.DB, email string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			clone := *p
			return &clone, r.err
		}
	}
	return nil, r.err
}

func (r *fakePatientRepo) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var all []entity.Patient
	for _, p := range r.patients {
		all = append(all, *p)
	}
	return all, r.err
}

func (r *fakePatientRepo) FindLatest(db *gorm.DB, limit int) ([]entity.Patient, error) {
	all, err := r.FindAll(db)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, err
}

func (r *fakePatientRepo) Update(db *gorm.DB, patient *entity.Patient) error {
	if r.err != nil {
		return r.err
	}
	clone := *patient
	r.patients[patient.ID] = &clone
	return nil
}

func (r *fakePatientRepo) UpdateAccountStatus(db *gorm.DB, id uint, status string) (int64, error) {
	p, ok := r.patients[id]
	if !ok {
		return 0, r.err
	}
	p.AccountStatus = status
	return 1, r.err
}

func (r *fakePatientRepo) Delete(db *gorm.DB, id uint) (int64, error) {
	if _, ok := r.patients[id]; !ok {
		return 0, r.err
	}
	delete(r.patients, id)
	return 1, r.err
}

func (r *fakePatientRepo) Count(db *gorm.DB) (int64, error) { return r.count, r.err }

func (r *fakePatientRepo) CountCreatedBefore(db *gorm.DB, before time.Time) (int64, error) {
	return r.before, r.err
}

// fakeAppointmentRepo stores appointments in memory. FindBookedByDoctor mirrors the
// repository query: non-cancelled, on or after from.
type fakeAppointmentRepo struct {
	appointments map[uint]*entity.Appointment
	nextID       uint

	findBookedErr error
	createErr     error
	updateErr     error

	counts   map[string]int64
	monthly  []repository.MonthlyCount
	top      *repository.DoctorCount
	between  []time.Time
	statuses map[entity.AppointmentStatus][]entity.Appointment
}

func newFakeAppointmentRepo(appointments ...*entity.Appointment) *fakeAppointmentRepo {
	r := &fakeAppointmentRepo{
		appointments: map[uint]*entity.Appointment{},
		nextID:       100,
		counts:       map[string]int64{},
		statuses:     map[entity.AppointmentStatus][]entity.Appointment{},
	}
	for _, a := range appointments {
		r.appointments[a.ID] = a
	}
	return r
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	appointment.ID = r.nextID
	clone := *appointment
	r.appointments[appointment.ID] = &clone
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var all []entity.Appointment
	for _, a := range r.sorted() {
		if filter != nil && filter.PatientID != 0 && a.PatientID != filter.PatientID {
			continue
		}
		all = append(all, a)
	}
	return all, nil
}

func (r *fakeAppointmentRepo) FindRecent(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	all := r.sorted()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeAppointmentRepo) FindBookedByDoctor(db *gorm.DB, doctorID uint, from time.Time) ([]entity.Appointment, error) {
	if r.findBookedErr != nil {
		return nil, r.findBookedErr
	}
	var booked []entity.Appointment
	for _, a := range r.sorted() {
		if a.DoctorID != doctorID || a.IsCancelled() || a.AppointmentDate.Before(from) {
			continue
		}
		booked = append(booked, a)
	}
	return booked, nil
}

func (r *fakeAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	clone := *appointment
	r.appointments[appointment.ID] = &clone
	return nil
}

func (r *fakeAppointmentRepo) Delete(db *gorm.DB, id uint) (int64, error) {
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

func (r *fakeAppointmentRepo) Count(db *gorm.DB) (int64, error) {
	return r.counts["total"], nil
}

func (r *fakeAppointmentRepo) CountBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	return r.counts["between:"+from.Format(dateLayout)], nil
}

func (r *fakeAppointmentRepo) CountActiveDoctorsBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	return r.counts["active:"+from.Format(dateLayout)], nil
}

func (r *fakeAppointmentRepo) CountByMonth(db *gorm.DB, year int) ([]repository.MonthlyCount, error) {
	return r.monthly, nil
}

func (r *fakeAppointmentRepo) CountByPatient(db *gorm.DB, patientID uint) (int64, error) {
	return r.counts["patient"], nil
}

func (r *fakeAppointmentRepo) CountByPatientBetween(db *gorm.DB, patientID uint, from, to time.Time) (int64, error) {
	r.between = append(r.between, from)
	return r.counts["patient:"+from.Format(dateLayout)], nil
}

func (r *fakeAppointmentRepo) FindByPatientAndStatuses(db *gorm.DB, patientID uint, statuses []entity.AppointmentStatus, after *time.Time) ([]entity.Appointment, error) {
	var found []entity.Appointment
	for _, s := range statuses {
		found = append(found, r.statuses[s]...)
	}
	return found, nil
}

func (r *fakeAppointmentRepo) TopDoctorForPatient(db *gorm.DB, patientID uint) (*repository.DoctorCount, error) {
	return r.top, nil
}

func (r *fakeAppointmentRepo) sorted() []entity.Appointment {
	all := make([]entity.Appointment, 0, len(r.appointments))
	for _, a := range r.appointments {
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// fakeNotificationRepo

type fakeNotificationRepo struct {
	notifications map[uint]*entity.PatientNotification
	nextID        uint
}

func newFakeNotificationRepo(notifications ...*entity.PatientNotification) *fakeNotificationRepo {
	r := &fakeNotificationRepo{notifications: map[uint]*entity.PatientNotification{}, nextID: 100}
	for _, n := range notifications {
		r.notifications[n.ID] = n
	}
	return r
}

func (r *fakeNotificationRepo) FindByID(db *gorm.DB, id uint) (*entity.PatientNotification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, nil
	}
	clone := *n
	return &clone, nil
}

func (r *fakeNotificationRepo) FindByPatientID(db *gorm.DB, patientID uint) ([]entity.PatientNotification, error) {
	var found []entity.PatientNotification
	for _, n := range r.notifications {
		if n.PatientID == patientID {
			found = append(found, *n)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

func (r *fakeNotificationRepo) Upsert(db *gorm.DB, notification *entity.PatientNotification) error {
	for _, n := range r.notifications {
		if n.PatientID == notification.PatientID && n.NotificationType == notification.NotificationType {
			notification.ID = n.ID
		}
	}
	if notification.ID == 0 {
		r.nextID++
		notification.ID = r.nextID
	}
	clone := *notification
	r.notifications[notification.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) Delete(db *gorm.DB, id uint) (int64, error) {
	if _, ok := r.notifications[id]; !ok {
		return 0, nil
	}
	delete(r.notifications, id)
	return 1, nil
}

// fakeAuditService records actions instead of writing them

type fakeAuditService struct {
	actions []string
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue, newValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue interface{}) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *fakeAuditService) Recent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	return nil, nil
}
