package models

import "errors"

// Domain error taxonomy. Services return these (possibly wrapped) and the
// HTTP layer maps them to status codes with errors.Is.
var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEnterpriseNotFound = errors.New("enterprise not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
)
