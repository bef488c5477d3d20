package service

import (
	"context"

	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue interface{}) error
	Recent(ctx context.Context, limit int) ([]entity.AuditLog, error)
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, newValue interface{}) error {
	return s.write(ctx, tx, actor, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, actor, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue interface{}) error {
	return s.write(ctx, tx, actor, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) Recent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	logs, err := s.auditRepo.FindAll(s.db.WithContext(ctx), limit)
	if err != nil {
		s.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}
	return logs, nil
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actor entity.Actor, action string, entityName string, entityID uint, oldValue, newValue interface{}) error {
	if tx == nil {
		tx = s.db.WithContext(ctx)
	}

	auditLog := &entity.AuditLog{
		ActorRole: actor.Role,
		ActorID:   actor.ID,
		Action:    action,
		Metadata: entity.JSON{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
