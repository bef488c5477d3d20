package usecase

import (
	"context"
	"errors"
	"strings"

	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound    = errors.New("admin not found")
	ErrCannotDeleteSelf = errors.New("admins cannot delete their own account")
	ErrNotAccountOwner  = errors.New("only the account owner can change this password")
)

type AdminUsecase interface {
	List(ctx context.Context) (*dto.AdminListResponse, error)
	Get(ctx context.Context, id uint) (*dto.AdminResponse, error)
	Create(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	Delete(ctx context.Context, id uint) error
	ChangePassword(ctx context.Context, id uint, req *dto.ChangePasswordRequest) error
}

type adminUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	adminRepo   repository.AdminRepository
	authUsecase AuthUsecase
}

func NewAdminUsecase(db *gorm.DB, log *logrus.Logger, adminRepo repository.AdminRepository, authUsecase AuthUsecase) AdminUsecase {
	return &adminUsecase{
		db:          db,
		log:         log,
		adminRepo:   adminRepo,
		authUsecase: authUsecase,
	}
}

func (u *adminUsecase) List(ctx context.Context) (*dto.AdminListResponse, error) {
	admins, err := u.adminRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find admins: %+v", err)
		return nil, err
	}

	return &dto.AdminListResponse{
		Admins: converter.AdminsToResponses(admins),
		Total:  len(admins),
	}, nil
}

func (u *adminUsecase) Get(ctx context.Context, id uint) (*dto.AdminResponse, error) {
	admin, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.AdminToResponse(admin), nil
}

func (u *adminUsecase) Create(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	admin := &entity.Admin{
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Email:    normalizeEmail(req.Email),
		Password: hashedPassword,
	}

	if err := u.adminRepo.Create(u.db.WithContext(ctx), admin); err != nil {
		return nil, u.mapWriteError(err, "create")
	}

	return converter.AdminToResponse(admin), nil
}

func (u *adminUsecase) Update(ctx context.Context, id uint, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	admin, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.Name = strings.TrimSpace(req.Name)
	admin.Username = strings.TrimSpace(req.Username)
	admin.Email = normalizeEmail(req.Email)
	admin.ProfilePic = req.ProfilePic

	if err := u.adminRepo.Update(u.db.WithContext(ctx), admin); err != nil {
		return nil, u.mapWriteError(err, "update")
	}

	return converter.AdminToResponse(admin), nil
}

func (u *adminUsecase) Delete(ctx context.Context, id uint) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if actor.IsAdmin() && actor.ID == id {
		return ErrCannotDeleteSelf
	}

	affected, err := u.adminRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete admin %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAdminNotFound
	}

	if err := u.authUsecase.RevokeAllTokens(ctx, entity.RoleAdmin, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of deleted admin %d: %+v", id, err)
	}
	return nil
}

func (u *adminUsecase) ChangePassword(ctx context.Context, id uint, req *dto.ChangePasswordRequest) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() || actor.ID != id {
		return ErrNotAccountOwner
	}

	admin, err := u.find(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}
	admin.Password = hashedPassword

	if err := u.adminRepo.Update(u.db.WithContext(ctx), admin); err != nil {
		u.log.Warnf("Failed to update admin password: %+v", err)
		return err
	}

	return nil
}

func (u *adminUsecase) find(ctx context.Context, id uint) (*entity.Admin, error) {
	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find admin %d: %+v", id, err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (u *adminUsecase) mapWriteError(err error, op string) error {
	if isDuplicateKeyError(err, "email") {
		return ErrEmailAlreadyExists
	}
	if isDuplicateKeyError(err, "username") {
		return ErrUsernameAlreadyExists
	}
	u.log.Warnf("Failed to %s admin: %+v", op, err)
	return err
}
