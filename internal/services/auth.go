package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"sumitk/ai-interviewer/internal/config"
	"sumitk/ai-interviewer/internal/models"
)

// HRAuthService authenticates the HR account and issues the bearer tokens
// that gate the reporting endpoints.
type HRAuthService interface {
	Login(email, password string) (*models.LoginResponse, error)
	ValidateToken(tokenString string) error
}

type hrAuthService struct {
	cfg config.HRConfig
}

func NewHRAuthService(cfg config.HRConfig) HRAuthService {
	return &hrAuthService{cfg: cfg}
}

// Login implements HRAuthService. The password is checked against the bcrypt
// hash from configuration; both wrong email and wrong password return the
// same error.
func (s *hrAuthService) Login(email, password string) (*models.LoginResponse, error) {
	if email != s.cfg.Email {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidInput)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidInput)
	}

	expiresAt := time.Now().Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "hr",
		"exp":  expiresAt.Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken implements HRAuthService.
func (s *hrAuthService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
