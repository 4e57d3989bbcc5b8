package models

// Field length constraints shared by validation and column definitions
const (
	MinNameLength        = 2
	MaxNameLength        = 100
	MaxEnterpriseName    = 255
	MaxDescriptionLength = 1000
	MaxEmailLength       = 255
	MaxWebsiteLength     = 255
	MaxIndustryLength    = 100

	// Registration enforces the stronger policy; direct admin creation
	// keeps the weaker legacy minimum.
	MinRegisterPasswordLength = 8
	MinAdminPasswordLength    = 6
)
