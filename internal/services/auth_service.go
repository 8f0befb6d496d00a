package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/mailer"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles business logic for authentication, user profiles and
// the password-reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	mail       mailer.Mailer
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
	resetDurat time.Duration // Duration for which a reset token is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, mail mailer.Mailer, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mail:       mail,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
		resetDurat: 1 * time.Hour,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them
// to the database. Self-registered users are always customers.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.Role = models.RoleCustomer

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the email exists
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
}

// GetProfile retrieves the user behind the authenticated session.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile updates the user's name, surname and email. Role and
// password are not touched here.
func (s *AuthService) UpdateProfile(userID, name, surname, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		if existing, lookupErr := s.userRepo.GetByEmail(email); lookupErr == nil && existing != nil {
			return nil, fmt.Errorf("email '%s' already registered: %w", email, apperrors.ErrConflict)
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	if surname != "" {
		user.Surname = surname
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount deletes the user behind the authenticated session.
func (s *AuthService) DeleteAccount(userID string) error {
	return s.userRepo.Delete(userID)
}

// RequestPasswordReset issues a one-shot reset token and hands it to the
// mailer. An unknown email is deliberately not an error, so the endpoint
// cannot be used to probe which addresses are registered.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	user.ResetToken = uuid.New().String()
	user.ResetTokenExpiry = time.Now().Add(s.resetDurat)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mail.SendPasswordReset(user.Email, user.ResetToken); err != nil {
		log.Printf("Warning: failed to send password reset mail to %s: %v", user.Email, err)
	}
	return nil
}

// VerifyResetToken checks that a reset token exists and has not expired.
func (s *AuthService) VerifyResetToken(token string) (*models.User, error) {
	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid reset token: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if time.Now().After(user.ResetTokenExpiry) {
		return nil, fmt.Errorf("reset token expired: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// ResetPassword sets a new password for the user holding the reset token
// and invalidates the token.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", apperrors.ErrInvalidArgument)
	}

	user, err := s.VerifyResetToken(token)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiry = time.Time{}

	return s.userRepo.Update(user)
}
