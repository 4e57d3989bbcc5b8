package services

import (
	"testing"

	"github.com/enterprise-service/admin-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	// Auto-migrate all models
	err = db.AutoMigrate(
		&models.Admin{},
		&models.Enterprise{},
		&models.EnterpriseSettings{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Clean up test data before each test
	CleanupTestData(t, db)

	return db
}

// CleanupTestData removes all test data from the database
// Exported for use in handler tests
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in reverse order of dependencies
	if err := db.Exec("DELETE FROM enterprise_settings").Error; err != nil {
		t.Logf("Warning: failed to cleanup enterprise_settings: %v", err)
	}
	if err := db.Exec("DELETE FROM enterprises").Error; err != nil {
		t.Logf("Warning: failed to cleanup enterprises: %v", err)
	}
	if err := db.Exec("DELETE FROM admins").Error; err != nil {
		t.Logf("Warning: failed to cleanup admins: %v", err)
	}
}
