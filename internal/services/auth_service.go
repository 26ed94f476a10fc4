// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/config"
	"github.com/trueworldtech/storefront-api/internal/models"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,admin_password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserAuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AdminAuthResponse struct {
	Admin *models.Admin `json:"admin"`
	Token string        `json:"token"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) RegisterUser(req *RegisterUserRequest) (*UserAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateJWT(user.ID, false, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &UserAuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) LoginUser(req *LoginRequest) (*UserAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Uniform message regardless of which check failed
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	token, err := utils.GenerateJWT(user.ID, false, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &UserAuthResponse{User: &user, Token: token}, nil
}

func (s *AuthService) RegisterAdmin(req *RegisterAdminRequest) (*AdminAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	var existing models.Admin
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperrors.Conflict("Admin already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	admin := &models.Admin{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.AdminRoleManager,
	}

	if err := admin.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	token, err := utils.GenerateJWT(admin.ID, true, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AdminAuthResponse{Admin: admin, Token: token}, nil
}

func (s *AuthService) LoginAdmin(req *LoginRequest) (*AdminAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(validationMessage(err)).WithError(err)
	}

	var admin models.Admin
	if err := s.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	admin.LastLoginAt = &now
	s.db.Save(&admin)

	token, err := utils.GenerateJWT(admin.ID, true, s.cfg.JWT.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AdminAuthResponse{Admin: &admin, Token: token}, nil
}

// validationMessage picks the first field error as the response message.
func validationMessage(err error) string {
	fieldErrors := utils.GetValidationErrors(err)
	if len(fieldErrors) > 0 {
		return fieldErrors[0].Message
	}
	return "Invalid request"
}
