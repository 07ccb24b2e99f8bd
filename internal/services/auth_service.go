package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
)

// AuthService authenticates staff accounts. A successful login is the
// precondition for using the shared data-access handle.
type AuthService struct {
	staffRepo  repositories.StaffRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which the session token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(staffRepo repositories.StaffRepository, jwtSecret string) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// HasAccounts reports whether any staff account exists yet; when none do
// the shell bootstraps the first operator.
func (s *AuthService) HasAccounts() (bool, error) {
	count, err := s.staffRepo.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Register creates a new staff account with a hashed password.
func (s *AuthService) Register(staff *models.Staff) error {
	if existing, err := s.staffRepo.GetByUsername(staff.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken", staff.Username)
	}
	if existing, err := s.staffRepo.GetByEmail(staff.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered", staff.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(staff.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	staff.Password = string(hashedPassword)

	if err := s.staffRepo.Create(staff); err != nil {
		return fmt.Errorf("failed to register staff account: %w", err)
	}
	return nil
}

// Login authenticates a staff account and returns a session token.
func (s *AuthService) Login(username, password string) (string, error) {
	staff, err := s.staffRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", models.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": staff.ID,
		"username": staff.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a session token, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Warnf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
