package services_test

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"chocshop/internal/models"
	"chocshop/internal/services"

	"github.com/dgrijalva/jwt-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockStaffRepository is a mock implementation of repositories.StaffRepository
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(staff *models.Staff) error {
	args := m.Called(staff)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByUsername(username string) (*models.Staff, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) GetByEmail(email string) (*models.Staff, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) GetByID(id string) (*models.Staff, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Staff), args.Error(1)
}

func (m *MockStaffRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// TestMain suppresses logging during tests for cleaner output
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	staff := &models.Staff{
		Username: "teststaff",
		Email:    "staff@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", staff.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", staff.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Staff")).Return(nil).Once()

	err := authService.Register(staff)
	assert.NoError(t, err)
	// The stored password is hashed, never the plaintext
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", staff.Username).Return(&models.Staff{ID: "1"}, nil).Once()
	err = authService.Register(staff)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "username 'teststaff' already taken")
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", staff.Username).Return(nil, nil).Once()
	mockRepo.On("GetByEmail", staff.Email).Return(&models.Staff{ID: "1"}, nil).Once()
	err = authService.Register(staff)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'staff@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	staff := &models.Staff{
		ID:       "staff-123",
		Username: "teststaff",
		Email:    "staff@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", staff.Username).Return(staff, nil).Once()
	token, err := authService.Login("teststaff", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, staff.ID, claims["staff_id"])
	assert.Equal(t, staff.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", staff.Username).Return(staff, nil).Once()
	_, err = authService.Login("teststaff", "wrongpassword")
	assert.True(t, errors.Is(err, models.ErrInvalidCredentials))
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (account not found); the generic error hides
	// whether the username exists
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("staff with username nobody: %w", models.ErrNotFound)).Once()
	_, err = authService.Login("nobody", "password123")
	assert.True(t, errors.Is(err, models.ErrInvalidCredentials))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": "staff-123",
		"username": "teststaff",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "staff-123", claims["staff_id"])
	assert.Equal(t, "teststaff", claims["username"])

	// Test malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": "staff-123",
		"username": "teststaff",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_HasAccounts(t *testing.T) {
	mockRepo := new(MockStaffRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	mockRepo.On("Count").Return(int64(0), nil).Once()
	has, err := authService.HasAccounts()
	assert.NoError(t, err)
	assert.False(t, has)

	mockRepo.On("Count").Return(int64(2), nil).Once()
	has, err = authService.HasAccounts()
	assert.NoError(t, err)
	assert.True(t, has)
	mockRepo.AssertExpectations(t)
}
