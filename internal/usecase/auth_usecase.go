package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healthcare-booking/internal/converter"
	"healthcare-booking/internal/delivery/dto"
	"healthcare-booking/internal/delivery/http/middleware"
	"healthcare-booking/internal/domain/entity"
	"healthcare-booking/internal/domain/repository"
	"healthcare-booking/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountSuspended      = errors.New("account is suspended")
	ErrWrongPassword         = errors.New("old password does not match")
)

type AuthUsecase interface {
	AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	PatientLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	Logout(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*dto.MeResponse, error)
	RevokeAllTokens(ctx context.Context, role string, subjectID uint) error
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	adminRepo   repository.AdminRepository
	patientRepo repository.PatientRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		adminRepo:   adminRepo,
		patientRepo: patientRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (u *authUsecase) AdminLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := u.adminRepo.FindByEmail(u.db.WithContext(ctx), normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find admin by email: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(ctx, entity.RoleAdmin, admin.ID, admin.Email)
}

func (u *authUsecase) PatientLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), normalizeEmail(req.Email))
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !patient.IsActive() {
		return nil, ErrAccountSuspended
	}

	return u.issueToken(ctx, entity.RolePatient, patient.ID, patient.Email)
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		dob = &parsed
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		FullName:      strings.TrimSpace(req.FullName),
		Username:      strings.TrimSpace(req.Username),
		Email:         normalizeEmail(req.Email),
		Password:      hashedPassword,
		PhoneNumber:   req.PhoneNumber,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		AccountStatus: entity.AccountStatusActive,
	}

	if err := u.patientRepo.Create(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *authUsecase) Logout(ctx context.Context) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	tokenID, ok := middleware.GetTokenIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if err := u.redisClient.Del(ctx, middleware.AccessTokenKey(actor.Role, actor.ID, tokenID)).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.MeResponse, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find admin by ID: %+v", err)
			return nil, err
		}
		if admin == nil {
			return nil, ErrAdminNotFound
		}
		return &dto.MeResponse{Role: actor.Role, Admin: converter.AdminToResponse(admin)}, nil
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), actor.ID)
		if err != nil {
			u.log.Warnf("Failed to find patient by ID: %+v", err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		return &dto.MeResponse{Role: actor.Role, Patient: converter.PatientToResponse(patient)}, nil
	}

	return nil, ErrUnauthenticated
}

// RevokeAllTokens revokes every live access token of one account (password change, suspension, deletion)
func (u *authUsecase) RevokeAllTokens(ctx context.Context, role string, subjectID uint) error {
	pattern := fmt.Sprintf("access_token:%s:%d:*", role, subjectID)

	var keys []string
	iter := u.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		u.log.Warnf("Failed to scan access token keys: %+v", err)
		return err
	}

	if len(keys) > 0 {
		if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
			u.log.Warnf("Failed to delete access tokens: %+v", err)
			return err
		}
	}

	return nil
}

func (u *authUsecase) issueToken(ctx context.Context, role string, subjectID uint, email string) (*dto.TokenResponse, error) {
	accessToken, tokenID, err := u.jwtService.GenerateAccessToken(subjectID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	key := middleware.AccessTokenKey(role, subjectID, tokenID)
	if err := u.redisClient.Set(ctx, key, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		Role:        role,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
