package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Admin represents an authenticated operator account
type Admin struct {
	AdminID      string `gorm:"primarykey;column:admin_id" json:"admin_id"`
	Email        string `gorm:"column:email;not null;unique;size:255" json:"email"`
	FirstName    string `gorm:"column:first_name;not null;size:100" json:"first_name"`
	LastName     string `gorm:"column:last_name;not null;size:100" json:"last_name"`
	PasswordHash string `gorm:"column:password_hash;not null;size:255" json:"-"`
	BaseModel
}

// TableName sets the table name for GORM
func (Admin) TableName() string {
	return "admins"
}

// AdminResponse is the client-facing shape of an Admin. The password hash is
// deliberately not part of this struct.
type AdminResponse struct {
	AdminID   string `json:"admin_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

var nameCharsRegex = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)

// CreateAdminRequest is the payload for POST /admins
type CreateAdminRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Validate checks field constraints before any service call runs
func (r CreateAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email, validation.Length(0, MaxEmailLength)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(MinNameLength, MaxNameLength)),
		validation.Field(&r.LastName, validation.Required, validation.Length(MinNameLength, MaxNameLength)),
		validation.Field(&r.Password, validation.Required, validation.Length(MinAdminPasswordLength, 0)),
	)
}

// UpdateAdminRequest is the partial payload for PATCH /admins/{id}.
// Nil fields are left untouched.
type UpdateAdminRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
}

// Validate checks the fields that are present. A present field must carry a
// value; an explicit empty string is rejected rather than blanking the column.
func (r UpdateAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email, validation.Length(0, MaxEmailLength)),
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(MinNameLength, MaxNameLength)),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, validation.Length(MinNameLength, MaxNameLength)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(MinAdminPasswordLength, 0)),
	)
}
