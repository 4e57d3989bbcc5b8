package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims defines the custom claims embedded in every issued token
type JWTClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AuthResponse is the raw (non-enveloped) shape returned by the auth routes
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	Admin       *AdminResponse `json:"admin"`
}

var (
	passwordLowerRegex = regexp.MustCompile(`[a-z]`)
	passwordUpperRegex = regexp.MustCompile(`[A-Z]`)
	passwordDigitRegex = regexp.MustCompile(`\d`)
)

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Validate enforces the registration password policy: at least 8 characters
// with an uppercase letter, a lowercase letter and a digit.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(0, MaxEmailLength)),
		validation.Field(&r.FirstName,
			validation.Required,
			validation.Length(MinNameLength, MaxNameLength),
			validation.Match(nameCharsRegex).Error("must contain only letters and spaces"),
		),
		validation.Field(&r.LastName,
			validation.Required,
			validation.Length(MinNameLength, MaxNameLength),
			validation.Match(nameCharsRegex).Error("must contain only letters and spaces"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(MinRegisterPasswordLength, 0),
			validation.Match(passwordLowerRegex).Error("must contain a lowercase letter"),
			validation.Match(passwordUpperRegex).Error("must contain an uppercase letter"),
			validation.Match(passwordDigitRegex).Error("must contain a digit"),
		),
	)
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks field constraints before any service call runs
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(MinRegisterPasswordLength, 0)),
	)
}
