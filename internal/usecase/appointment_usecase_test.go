package usecase

import (
	"context"
	"testing"
	"time"

	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	uc           AppointmentUsecase
	mock         sqlmock.Sqlmock
	mr           *miniredis.Miniredis
	appointments *fakeAppointmentRepo
	audit        *fakeAuditService
}

func newAppointmentFixture(t *testing.T, existing ...*entity.Appointment) *appointmentFixture {
	t.Helper()

	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := newTestLogger()
	appointments := newFakeAppointmentRepo(existing...)
	audit := &fakeAuditService{}
	uc := NewAppointmentUsecase(
		db,
		log,
		appointments,
		newFakeDoctorRepo(testDoctor()),
		service.NewSlotHoldService(client, log, 30*time.Second),
		audit,
		fixedClock(testNow),
		nil,
	)

	return &appointmentFixture{uc: uc, mock: mock, mr: mr, appointments: appointments, audit: audit}
}

func bookingRequest(day, slot string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{DoctorID: 7, AppointmentDate: day, AppointmentTime: slot}
}

func TestAppointmentUsecase_Create(t *testing.T) {
	f := newAppointmentFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	res, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00 AM"))
	require.NoError(t, err)

	assert.Equal(t, uint(3), res.PatientID)
	assert.Equal(t, "2024-06-19", res.AppointmentDate)
	assert.Equal(t, "10:00:00", res.AppointmentTime)
	assert.Equal(t, "10:00 AM", res.TimeLabel)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), res.Status)
	assert.Equal(t, []string{entity.AuditActionAppointmentCreate}, f.audit.actions)

	// the hold is released once the booking is written
	assert.Empty(t, f.mr.Keys())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_Create_SlotAlreadyBooked(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 1, PatientID: 4, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
	)

	_, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00 AM"))
	assert.ErrorIs(t, err, availability.ErrSlotUnavailable)
	assert.Len(t, f.appointments.appointments, 1)
}

func TestAppointmentUsecase_Create_CancelledSlotIsFree(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 1, PatientID: 4, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: "CANCELLED"},
	)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00"))
	require.NoError(t, err)
	assert.Len(t, f.appointments.appointments, 2)
}

func TestAppointmentUsecase_Create_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.CreateAppointmentRequest
		want error
	}{
		{"non service day", bookingRequest("2024-06-18", "10:00 AM"), availability.ErrDateUnavailable},
		{"past date", bookingRequest("2024-06-10", "10:00 AM"), availability.ErrDateUnavailable},
		{"beyond horizon", bookingRequest("2024-07-08", "10:00 AM"), availability.ErrDateUnavailable},
		{"outside working hours", bookingRequest("2024-06-19", "1:00 PM"), availability.ErrSlotUnavailable},
		{"elapsed today", bookingRequest("2024-06-17", "10:00 AM"), availability.ErrSlotUnavailable},
		{"bad date", bookingRequest("June 19", "10:00 AM"), ErrInvalidDateFormat},
		{"bad time", bookingRequest("2024-06-19", "ten"), ErrInvalidSlotTime},
		{"unknown doctor", &dto.CreateAppointmentRequest{DoctorID: 99, AppointmentDate: "2024-06-19", AppointmentTime: "10:00 AM"}, ErrDoctorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)

			_, err := f.uc.Create(patientCtx(3), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.appointments.appointments)
		})
	}
}

func TestAppointmentUsecase_Create_RequiresCaller(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.uc.Create(context.Background(), bookingRequest("2024-06-19", "10:00 AM"))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAppointmentUsecase_Create_SlotHeldByAnotherRequest(t *testing.T) {
	f := newAppointmentFixture(t)
	key := service.SlotHoldKey(7, date(2024, 6, 19), "10:00:00")
	require.NoError(t, f.mr.Set(key, "other-request"))

	_, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00 AM"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// a foreign hold is left alone
	assert.True(t, f.mr.Exists(key))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_Create_UniqueIndexConflict(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.createErr = &pgconn.PgError{Code: "23505", ConstraintName: slotUniqueIndex}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00 AM"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_Create_WithoutRedis(t *testing.T) {
	f := newAppointmentFixture(t)
	f.mr.Close()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00 AM"))
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_Create_AvailabilityUnknown(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointments.findBookedErr = assert.AnError

	_, err := f.uc.Create(patientCtx(3), bookingRequest("2024-06-19", "10:00 AM"))
	assert.ErrorIs(t, err, ErrAvailabilityUnknown)
	assert.Empty(t, f.appointments.appointments)
}

func TestAppointmentUsecase_Reschedule_KeepsOwnSlot(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
	)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	res, err := f.uc.Reschedule(patientCtx(3), 50, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2024-06-19",
		AppointmentTime: "10:00 AM",
		Reason:          "confirming",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusRescheduled), res.Status)
	assert.Equal(t, []string{entity.AuditActionAppointmentReschedule}, f.audit.actions)
}

func TestAppointmentUsecase_Reschedule_ToAnotherDay(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
	)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	res, err := f.uc.Reschedule(patientCtx(3), 50, &dto.RescheduleAppointmentRequest{AppointmentDate: "2024-06-24", AppointmentTime: "9:00 AM"})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-24", res.AppointmentDate)
	assert.Equal(t, "09:00:00", res.AppointmentTime)
	assert.Equal(t, "2024-06-24", res.RescheduleDate)

	stored := f.appointments.appointments[50]
	assert.Equal(t, "09:00:00", stored.AppointmentTime)
}

func TestAppointmentUsecase_Reschedule_Rejects(t *testing.T) {
	existing := func() []*entity.Appointment {
		return []*entity.Appointment{
			{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
			{ID: 51, PatientID: 4, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "11:00:00", Status: entity.AppointmentStatusScheduled},
			{ID: 52, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "09:00:00", Status: entity.AppointmentStatusCancelled},
			{ID: 53, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 12), AppointmentTime: "09:00:00", Status: entity.AppointmentStatusCompleted},
		}
	}
	req := &dto.RescheduleAppointmentRequest{AppointmentDate: "2024-06-19", AppointmentTime: "11:00 AM"}

	tests := []struct {
		name string
		ctx  context.Context
		id   uint
		want error
	}{
		{name: "slot of another appointment", ctx: patientCtx(3), id: 50, want: availability.ErrSlotUnavailable},
		{name: "not the owner", ctx: patientCtx(4), id: 50, want: ErrAppointmentNotOwned},
		{name: "cancelled", ctx: patientCtx(3), id: 52, want: ErrAppointmentAlreadyCancelled},
		{name: "completed", ctx: patientCtx(3), id: 53, want: ErrAppointmentCompleted},
		{name: "missing", ctx: patientCtx(3), id: 99, want: ErrAppointmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t, existing()...)

			_, err := f.uc.Reschedule(tt.ctx, tt.id, req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.audit.actions)
		})
	}
}

func TestAppointmentUsecase_Cancel_FreesSlot(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
	)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	res, err := f.uc.Cancel(patientCtx(3), 50, &dto.CancelAppointmentRequest{Reason: "feeling better"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), res.Status)
	require.NotNil(t, res.CancellationReason)
	assert.Equal(t, "feeling better", *res.CancellationReason)

	// the slot can be booked again
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.uc.Create(patientCtx(4), bookingRequest("2024-06-19", "10:00 AM"))
	require.NoError(t, err)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAppointmentUsecase_UpdateStatus(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
	)

	_, err := f.uc.UpdateStatus(adminCtx(1), 50, &dto.UpdateAppointmentStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidAppointmentStatus)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	res, err := f.uc.UpdateStatus(adminCtx(1), 50, &dto.UpdateAppointmentStatusRequest{Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), res.Status)
	assert.Equal(t, []string{entity.AuditActionAppointmentStatus}, f.audit.actions)
}

func TestAppointmentUsecase_UpdateStatus_RevivalConflict(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusCancelled},
	)
	f.appointments.updateErr = &pgconn.PgError{Code: "23505", ConstraintName: slotUniqueIndex}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.uc.UpdateStatus(adminCtx(1), 50, &dto.UpdateAppointmentStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestAppointmentUsecase_Delete(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
	)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	require.NoError(t, f.uc.Delete(adminCtx(1), 50))

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	assert.ErrorIs(t, f.uc.Delete(adminCtx(1), 50), ErrAppointmentNotFound)
}

func TestAppointmentUsecase_GetMyAppointments(t *testing.T) {
	f := newAppointmentFixture(t,
		&entity.Appointment{ID: 50, PatientID: 3, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "10:00:00", Status: entity.AppointmentStatusScheduled},
		&entity.Appointment{ID: 51, PatientID: 4, DoctorID: 7, AppointmentDate: date(2024, 6, 19), AppointmentTime: "11:00:00", Status: entity.AppointmentStatusScheduled},
	)

	res, err := f.uc.GetMyAppointments(patientCtx(3))
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, uint(50), res.Appointments[0].ID)
}
