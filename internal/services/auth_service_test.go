// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
	"github.com/trueworldtech/storefront-api/internal/config"
	"github.com/trueworldtech/storefront-api/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	authService *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", TokenTTL: 1},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	suite.authService = NewAuthService(suite.db, cfg)
}

func (suite *AuthServiceTestSuite) TestRegisterUser() {
	resp, err := suite.authService.RegisterUser(&RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})

	suite.NoError(err)
	suite.Equal("ada@example.com", resp.User.Email)
	suite.NotEmpty(resp.Token)
	suite.NotEqual("secret123", resp.User.PasswordHash)

	claims, err := utils.ValidateJWT(resp.Token)
	suite.NoError(err)
	suite.Equal(resp.User.ID.String(), claims.AccountID)
	suite.False(claims.IsAdmin)
}

func (suite *AuthServiceTestSuite) TestRegisterUserDuplicateEmail() {
	_, err := suite.authService.RegisterUser(&RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)

	_, err = suite.authService.RegisterUser(&RegisterUserRequest{
		Name:     "Another Ada",
		Email:    "ada@example.com",
		Password: "secret456",
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeConflict, appErr.Code)
}

func (suite *AuthServiceTestSuite) TestRegisterUserShortPassword() {
	_, err := suite.authService.RegisterUser(&RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	})

	suite.Error(err)
	appErr, ok := apperrors.As(err)
	suite.True(ok)
	suite.Equal(apperrors.CodeValidation, appErr.Code)
}

func (suite *AuthServiceTestSuite) TestLoginUser() {
	_, err := suite.authService.RegisterUser(&RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)

	resp, err := suite.authService.LoginUser(&LoginRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})

	suite.NoError(err)
	suite.NotEmpty(resp.Token)
	suite.NotNil(resp.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestLoginUserWrongPassword() {
	_, err := suite.authService.RegisterUser(&RegisterUserRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)

	_, err = suite.authService.LoginUser(&LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	suite.Error(err)
	suite.Equal("Invalid credentials", err.Error())
}

func (suite *AuthServiceTestSuite) TestLoginUnknownEmailSameMessage() {
	_, err := suite.authService.LoginUser(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	suite.Error(err)
	suite.Equal("Invalid credentials", err.Error())
}

func (suite *AuthServiceTestSuite) TestRegisterAdmin() {
	resp, err := suite.authService.RegisterAdmin(&RegisterAdminRequest{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "password1",
	})

	suite.NoError(err)
	suite.NotEmpty(resp.Token)

	claims, err := utils.ValidateJWT(resp.Token)
	suite.NoError(err)
	suite.True(claims.IsAdmin)
}

func (suite *AuthServiceTestSuite) TestRegisterAdminWeakPassword() {
	// No digit
	_, err := suite.authService.RegisterAdmin(&RegisterAdminRequest{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "lettersonly",
	})
	suite.Error(err)

	// Too short
	_, err = suite.authService.RegisterAdmin(&RegisterAdminRequest{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "abc1",
	})
	suite.Error(err)
}

func (suite *AuthServiceTestSuite) TestLoginAdmin() {
	_, err := suite.authService.RegisterAdmin(&RegisterAdminRequest{
		Name:     "Boss",
		Email:    "boss@example.com",
		Password: "password1",
	})
	suite.Require().NoError(err)

	resp, err := suite.authService.LoginAdmin(&LoginRequest{
		Email:    "boss@example.com",
		Password: "password1",
	})

	suite.NoError(err)
	suite.NotEmpty(resp.Token)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
