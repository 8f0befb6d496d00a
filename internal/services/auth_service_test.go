package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/services"
	"gerai/pkg/mailer"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newAuthServiceForTest(mockRepo *MockUserRepository, secret string) *services.AuthService {
	return services.NewAuthService(mockRepo, mailer.NewLogMailer(), secret)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, "test_jwt_secret")

	user := &models.User{
		Name:     "Test",
		Surname:  "User",
		Email:    "test@example.com",
		Password: "password123",
	}

	// Successful registration: the plaintext password must be replaced by a
	// bcrypt hash and the role forced to customer, whatever was submitted.
	user.Role = models.RoleAdmin
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.Equal(t, models.RoleCustomer, user.Role)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", user.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := newAuthServiceForTest(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleCustomer,
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the token structure
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, models.RoleCustomer, claims["role"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Unknown email yields the same generic message
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()
	_, err = authService.LoginUser("nobody@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := newAuthServiceForTest(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    models.RoleCustomer,
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, models.RoleCustomer, claims["role"])

	// Test invalid token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Test token signed with a different secret
	foreignToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	foreignTokenString, _ := foreignToken.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(foreignTokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, "test_jwt_secret")

	// Unknown email is silently accepted, so the endpoint cannot be used
	// to probe which addresses are registered.
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()
	err := authService.RequestPasswordReset("nobody@example.com")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Known email gets a token with an expiry in the future
	user := &models.User{ID: "user-123", Email: "test@example.com"}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err = authService.RequestPasswordReset(user.Email)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ResetToken)
	assert.True(t, user.ResetTokenExpiry.After(time.Now()))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, "test_jwt_secret")

	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := &models.User{
		ID:               "user-123",
		Email:            "test@example.com",
		Password:         string(oldHash),
		ResetToken:       "valid-token",
		ResetTokenExpiry: time.Now().Add(30 * time.Minute),
	}

	// Successful reset: password re-hashed, token invalidated
	mockRepo.On("GetByResetToken", "valid-token").Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.ResetPassword("valid-token", "newpassword")
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword")))
	assert.Empty(t, user.ResetToken)
	mockRepo.AssertExpectations(t)

	// Unknown token
	mockRepo.On("GetByResetToken", "bogus").Return(nil, fmt.Errorf("not found: %w", apperrors.ErrNotFound)).Once()
	err = authService.ResetPassword("bogus", "newpassword")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)

	// Expired token
	expired := &models.User{
		ID:               "user-456",
		ResetToken:       "stale-token",
		ResetTokenExpiry: time.Now().Add(-time.Minute),
	}
	mockRepo.On("GetByResetToken", "stale-token").Return(expired, nil).Once()
	err = authService.ResetPassword("stale-token", "newpassword")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	mockRepo.AssertExpectations(t)

	// Too-short replacement password is rejected before any lookup
	err = authService.ResetPassword("valid-token", "tiny")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo, "test_jwt_secret")

	user := &models.User{ID: "user-123", Name: "Old", Surname: "Name", Email: "old@example.com"}

	// Changing email to one that is already taken
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.User{ID: "user-999"}, nil).Once()
	_, err := authService.UpdateProfile("user-123", "", "", "taken@example.com")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)

	// Partial update: empty fields keep their current value
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err := authService.UpdateProfile("user-123", "New", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "Name", updated.Surname)
	assert.Equal(t, "old@example.com", updated.Email)
	mockRepo.AssertExpectations(t)
}
