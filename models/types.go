package models

import (
	"database/sql/driver"
	"fmt"
)

// ReportGenerationType represents the report generation mode for an enterprise
type ReportGenerationType string

const (
	ReportGenerationImmediate ReportGenerationType = "immediate"
	ReportGenerationBatch     ReportGenerationType = "batch"
)

// Scan implements the sql.Scanner interface for ReportGenerationType
func (rgt *ReportGenerationType) Scan(value interface{}) error {
	if value == nil {
		*rgt = ReportGenerationImmediate
		return nil
	}
	if str, ok := value.(string); ok {
		*rgt = ReportGenerationType(str)
		return nil
	}
	return fmt.Errorf("cannot scan %T into ReportGenerationType", value)
}

// Value implements the driver.Valuer interface for ReportGenerationType
func (rgt *ReportGenerationType) Value() (driver.Value, error) {
	return string(*rgt), nil
}

// Valid reports whether the value is one of the known report generation modes
func (rgt ReportGenerationType) Valid() bool {
	switch rgt {
	case ReportGenerationImmediate, ReportGenerationBatch:
		return true
	}
	return false
}

// AccessType represents the platform access level for an enterprise
type AccessType string

const (
	AccessTypeFull    AccessType = "full"
	AccessTypeLimited AccessType = "limited"
	AccessTypeCustom  AccessType = "custom"
)

// Scan implements the sql.Scanner interface for AccessType
func (at *AccessType) Scan(value interface{}) error {
	if value == nil {
		*at = AccessTypeFull
		return nil
	}
	if str, ok := value.(string); ok {
		*at = AccessType(str)
		return nil
	}
	return fmt.Errorf("cannot scan %T into AccessType", value)
}

// Value implements the driver.Valuer interface for AccessType
func (at *AccessType) Value() (driver.Value, error) {
	return string(*at), nil
}

// Valid reports whether the value is one of the known access types
func (at AccessType) Valid() bool {
	switch at {
	case AccessTypeFull, AccessTypeLimited, AccessTypeCustom:
		return true
	}
	return false
}
