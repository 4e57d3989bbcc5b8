package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// AuthService wraps password hashing and JWT issuance/verification
type AuthService struct {
	secret []byte
	expiry time.Duration
}

// NewAuthService creates a new auth service. The secret signs every issued
// token; expiry bounds token lifetime.
func NewAuthService(secret string, expiry time.Duration) *AuthService {
	return &AuthService{secret: []byte(secret), expiry: expiry}
}

// HashPassword generates a salted bcrypt hash of the given password
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ValidatePassword reports whether the cleartext password matches the stored
// hash. A mismatch is not an error.
func (s *AuthService) ValidatePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues a signed, time-bounded token for the given admin
func (s *AuthService) GenerateToken(adminID, email string) (string, error) {
	now := time.Now()
	claims := &models.JWTClaims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the embedded claims.
// An expired token is reported distinctly from any other invalid token.
func (s *AuthService) VerifyToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// DecodeToken extracts the claims without verifying the signature. It returns
// nil on unparsable input and must never be used for trust decisions.
func (s *AuthService) DecodeToken(tokenString string) *models.JWTClaims {
	claims := &models.JWTClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil
	}
	return claims
}
