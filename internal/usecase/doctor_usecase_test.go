package usecase

import (
	"testing"

	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorUsecase_Create_ReportsDiagnostics(t *testing.T) {
	db, mock := newMockDB(t)
	audit := &fakeAuditService{}
	uc := NewDoctorUsecase(db, newTestLogger(), newFakeDoctorRepo(), audit)

	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := uc.Create(adminCtx(1), &dto.CreateDoctorRequest{
		FullName:          "Dr. Rina",
		Email:             "Rina@Clinic.org",
		ServiceDays:       strPtr("Mon, Funday, Friday"),
		AvailabilityTimes: strPtr("late"),
	})
	require.NoError(t, err)

	assert.Equal(t, "rina@clinic.org", res.Email)
	assert.Equal(t, entity.DoctorStatusActive, res.Status)
	assert.Equal(t, "9:00 AM", res.Schedule.StartTime)
	assert.Equal(t, "5:00 PM", res.Schedule.EndTime)
	assert.Len(t, res.Schedule.Diagnostics, 2)
	assert.Equal(t, []string{entity.AuditActionDoctorCreate}, audit.actions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorUsecase_Update_KeepsStatus(t *testing.T) {
	db, mock := newMockDB(t)
	doctor := testDoctor()
	doctor.Status = entity.DoctorStatusOnLeave
	repo := newFakeDoctorRepo(doctor)
	uc := NewDoctorUsecase(db, newTestLogger(), repo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := uc.Update(adminCtx(1), 7, &dto.UpdateDoctorRequest{FullName: "Dr. Ana Lim", Email: "ana@clinic.org"})
	require.NoError(t, err)
	assert.Equal(t, entity.DoctorStatusOnLeave, res.Status)
	assert.Equal(t, entity.DoctorStatusOnLeave, repo.doctors[7].Status)
}

func TestDoctorUsecase_UpdateServiceDays(t *testing.T) {
	db, mock := newMockDB(t)
	repo := newFakeDoctorRepo(testDoctor())
	uc := NewDoctorUsecase(db, newTestLogger(), repo, &fakeAuditService{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := uc.UpdateServiceDays(adminCtx(1), 7, &dto.UpdateServiceDaysRequest{ServiceDays: "  "})
	require.NoError(t, err)
	assert.Nil(t, repo.doctors[7].ServiceDays)
	assert.Equal(t, "mon,tue,wed,thu,fri", res.Schedule.ServiceDays)
}

func TestDoctorUsecase_NotFound(t *testing.T) {
	db, _ := newMockDB(t)
	uc := NewDoctorUsecase(db, newTestLogger(), newFakeDoctorRepo(), &fakeAuditService{})

	_, err := uc.Get(adminCtx(1), 9)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = uc.UpdateStatus(adminCtx(1), 9, &dto.UpdateDoctorStatusRequest{Status: entity.DoctorStatusInactive})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
