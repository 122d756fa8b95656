package usecase

import (
	"context"
	"fmt"
	"strings"

	"asme-site/pkg/jwt"
	"asme-site/pkg/logger"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*entity.StaffUser, string, error)
	CreateStaff(ctx context.Context, email, name, password string, role entity.StaffRole) (*entity.StaffUser, error)
	GetStaff(ctx context.Context, id string) (*entity.StaffUser, error)
}

type authUseCase struct {
	staffRepo  persistent.StaffUserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(staffRepo persistent.StaffUserRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		staffRepo:  staffRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.StaffUser, string, error) {
	user, err := uc.staffRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountDisabled
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) CreateStaff(ctx context.Context, email, name, password string, role entity.StaffRole) (*entity.StaffUser, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) < 8 {
		return nil, validationError(fmt.Errorf("se requiere correo y una contraseña de al menos 8 caracteres"))
	}
	if role != entity.RoleAdmin && role != entity.RoleEditor {
		return nil, validationError(fmt.Errorf("rol inválido: %q", role))
	}

	if _, err := uc.staffRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, ErrStaffExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.StaffUser{
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}
	if err := uc.staffRepo.Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create staff user: %v", err)
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}

	user.Password = ""
	return user, nil
}

func (uc *authUseCase) GetStaff(ctx context.Context, id string) (*entity.StaffUser, error) {
	user, err := uc.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	user.Password = ""
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
