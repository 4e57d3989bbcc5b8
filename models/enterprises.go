package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Enterprise represents a tenant/organization record
type Enterprise struct {
	EnterpriseID string               `gorm:"primarykey;column:enterprise_id" json:"enterprise_id"`
	Name         string               `gorm:"column:name;not null;size:255" json:"name"`
	Description  *string              `gorm:"column:description;size:1000" json:"description,omitempty"`
	Website      *string              `gorm:"column:website;size:255" json:"website,omitempty"`
	Industry     *string              `gorm:"column:industry;size:100" json:"industry,omitempty"`
	Settings     *EnterpriseSettings  `gorm:"foreignKey:EnterpriseID;references:EnterpriseID;constraint:OnDelete:CASCADE" json:"settings,omitempty"`
	BaseModel
}

// TableName sets the table name for GORM
func (Enterprise) TableName() string {
	return "enterprises"
}

// EnterpriseSettings is the exclusively-owned 1:1 child of an Enterprise.
// Only the parent id is stored here; the parent is loaded separately.
type EnterpriseSettings struct {
	SettingID            string               `gorm:"primarykey;column:setting_id" json:"setting_id"`
	ReportGenerationType ReportGenerationType `gorm:"column:report_generation_type;not null;default:immediate" json:"report_generation_type"`
	AccessType           AccessType           `gorm:"column:access_type;not null;default:full" json:"access_type"`
	EnterpriseID         string               `gorm:"column:enterprise_id;not null;uniqueIndex" json:"-"`
	BaseModel
}

// TableName sets the table name for GORM
func (EnterpriseSettings) TableName() string {
	return "enterprise_settings"
}

// EnterpriseSettingsInput carries the optional nested settings of an
// enterprise create/update payload
type EnterpriseSettingsInput struct {
	ReportGenerationType *ReportGenerationType `json:"report_generation_type"`
	AccessType           *AccessType           `json:"access_type"`
}

// Validate checks enum membership for the fields that are present
func (r EnterpriseSettingsInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReportGenerationType, validation.By(validReportGenerationType)),
		validation.Field(&r.AccessType, validation.By(validAccessType)),
	)
}

func validReportGenerationType(value interface{}) error {
	rgt, ok := value.(*ReportGenerationType)
	if !ok || rgt == nil {
		return nil
	}
	if !rgt.Valid() {
		return errors.New("must be one of: immediate, batch")
	}
	return nil
}

func validAccessType(value interface{}) error {
	at, ok := value.(*AccessType)
	if !ok || at == nil {
		return nil
	}
	if !at.Valid() {
		return errors.New("must be one of: full, limited, custom")
	}
	return nil
}

// CreateEnterpriseRequest is the payload for POST /enterprises. The contact
// email is validated at creation time but not persisted as a column.
type CreateEnterpriseRequest struct {
	Name         string                   `json:"name"`
	Description  *string                  `json:"description"`
	Website      *string                  `json:"website"`
	Industry     *string                  `json:"industry"`
	ContactEmail string                   `json:"contact_email"`
	Settings     *EnterpriseSettingsInput `json:"settings"`
}

// Validate checks field constraints before any service call runs
func (r CreateEnterpriseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxEnterpriseName)),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&r.Website, is.URL, validation.Length(0, MaxWebsiteLength)),
		validation.Field(&r.Industry, validation.Length(0, MaxIndustryLength)),
		validation.Field(&r.ContactEmail, validation.Required, is.Email),
		validation.Field(&r.Settings),
	)
}

// UpdateEnterpriseRequest is the partial payload for PUT/PATCH
// /enterprises/{id}. Nil fields are left untouched.
type UpdateEnterpriseRequest struct {
	Name         *string                  `json:"name"`
	Description  *string                  `json:"description"`
	Website      *string                  `json:"website"`
	Industry     *string                  `json:"industry"`
	ContactEmail *string                  `json:"contact_email"`
	Settings     *EnterpriseSettingsInput `json:"settings"`
}

// Validate checks the fields that are present. Name and contact email are
// mandatory columns, so a present-but-empty value is rejected.
func (r UpdateEnterpriseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, MaxEnterpriseName)),
		validation.Field(&r.Description, validation.Length(0, MaxDescriptionLength)),
		validation.Field(&r.Website, is.URL, validation.Length(0, MaxWebsiteLength)),
		validation.Field(&r.Industry, validation.Length(0, MaxIndustryLength)),
		validation.Field(&r.ContactEmail, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Settings),
	)
}

// EnterpriseSettingsResponse is the client-facing shape of the settings child
type EnterpriseSettingsResponse struct {
	SettingID            string               `json:"setting_id"`
	ReportGenerationType ReportGenerationType `json:"report_generation_type"`
	AccessType           AccessType           `json:"access_type"`
	CreatedAt            string               `json:"created_at"`
	UpdatedAt            string               `json:"updated_at"`
}

// EnterpriseResponse is the client-facing shape of an Enterprise
type EnterpriseResponse struct {
	EnterpriseID string                      `json:"enterprise_id"`
	Name         string                      `json:"name"`
	Description  *string                     `json:"description,omitempty"`
	Website      *string                     `json:"website,omitempty"`
	Industry     *string                     `json:"industry,omitempty"`
	Settings     *EnterpriseSettingsResponse `json:"settings,omitempty"`
	CreatedAt    string                      `json:"created_at"`
	UpdatedAt    string                      `json:"updated_at"`
}
