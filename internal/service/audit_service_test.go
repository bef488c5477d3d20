package service

import (
	"context"
	"errors"
	"testing"

	"healthcare-booking/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

type fakeAuditRepo struct {
	created []*entity.AuditLog
	err     error
}

func (f *fakeAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, log)
	return nil
}

func (f *fakeAuditRepo) FindAll(db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	logs := make([]entity.AuditLog, 0, len(f.created))
	for _, l := range f.created {
		logs = append(logs, *l)
	}
	if len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, f.err
}

func TestAuditService_LogUpdate(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(newMockGorm(t), newTestLogger(), repo)
	actor := entity.Actor{Role: entity.RoleAdmin, ID: 2}

	err := svc.LogUpdate(context.Background(), nil, actor, entity.AuditActionAppointmentStatus, "appointment", 11, "scheduled", "completed")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	got := repo.created[0]
	assert.Equal(t, entity.RoleAdmin, got.ActorRole)
	assert.Equal(t, uint(2), got.ActorID)
	assert.Equal(t, entity.AuditActionAppointmentStatus, got.Action)
	assert.Equal(t, "appointment", got.Metadata["entity"])
	assert.Equal(t, uint(11), got.Metadata["entity_id"])
	assert.Equal(t, "scheduled", got.Metadata["old_value"])
	assert.Equal(t, "completed", got.Metadata["new_value"])
}

func TestAuditService_LogDeletePropagatesError(t *testing.T) {
	repo := &fakeAuditRepo{err: errors.New("db down")}
	svc := NewAuditService(newMockGorm(t), newTestLogger(), repo)

	err := svc.LogDelete(context.Background(), nil, entity.Actor{Role: entity.RoleAdmin, ID: 1}, entity.AuditActionDoctorDelete, "doctor", 4, nil)
	assert.EqualError(t, err, "db down")
}

func TestAuditService_Recent(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(newMockGorm(t), newTestLogger(), repo)
	actor := entity.Actor{Role: entity.RolePatient, ID: 9}

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, svc.LogCreate(context.Background(), nil, actor, entity.AuditActionAppointmentCreate, "appointment", i, nil))
	}

	logs, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
