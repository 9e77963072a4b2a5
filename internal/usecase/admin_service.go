package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nutriquiz/backend/internal/domain"
)

// AdminServiceConfig holds the admin credentials and token settings
type AdminServiceConfig struct {
	Username     string
	PasswordHash string // bcrypt
	JWTSecret    string
	TokenTTL     time.Duration
}

// AdminService authenticates the operator who exports leads
type AdminService struct {
	username     string
	passwordHash []byte
	secret       []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(config AdminServiceConfig) *AdminService {
	ttl := config.TokenTTL
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &AdminService{
		username:     config.Username,
		passwordHash: []byte(config.PasswordHash),
		secret:       []byte(config.JWTSecret),
		tokenTTL:     ttl,
		now:          time.Now,
	}
}

// Enabled reports whether admin login is configured at all
func (s *AdminService) Enabled() bool {
	return s.username != "" && len(s.passwordHash) > 0 && len(s.secret) > 0
}

// Login checks the credentials and issues a signed token
func (s *AdminService) Login(username, password string) (string, error) {
	if !s.Enabled() || username != s.username {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the subject of a valid admin token
func (s *AdminService) ValidateToken(tokenString string) (string, error) {
	if !s.Enabled() {
		return "", domain.ErrUnauthorized
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject != s.username {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}
