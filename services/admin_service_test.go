package services

import (
	"context"
	"testing"
	"time"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(t *testing.T) *AdminService {
	db := SetupSQLiteTestDB(t)
	auth := NewAuthService("test-secret", time.Hour)
	return NewAdminService(db, auth)
}

func strPtr(s string) *string {
	return &s
}

func TestAdminService_Create(t *testing.T) {
	t.Run("Create_Success", func(t *testing.T) {
		service := newTestAdminService(t)

		admin, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email:     "a@b.com",
			FirstName: "Alice",
			LastName:  "Bell",
			Password:  "Test123!",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, admin.AdminID)
		assert.Equal(t, "a@b.com", admin.Email)
		assert.Equal(t, "Alice", admin.FirstName)
		assert.NotEmpty(t, admin.CreatedAt)
	})

	t.Run("Create_StoresHashNotPassword", func(t *testing.T) {
		service := newTestAdminService(t)

		admin, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email:     "a@b.com",
			FirstName: "Alice",
			LastName:  "Bell",
			Password:  "Test123!",
		})
		require.NoError(t, err)

		entity, err := service.FindByEmail(context.Background(), admin.Email)
		require.NoError(t, err)
		require.NotNil(t, entity)
		assert.NotEqual(t, "Test123!", entity.PasswordHash)
		assert.True(t, service.auth.ValidatePassword("Test123!", entity.PasswordHash))
	})

	t.Run("Create_DuplicateEmail", func(t *testing.T) {
		service := newTestAdminService(t)

		req := &models.CreateAdminRequest{
			Email:     "a@b.com",
			FirstName: "Alice",
			LastName:  "Bell",
			Password:  "Test123!",
		}
		_, err := service.Create(context.Background(), req)
		require.NoError(t, err)

		_, err = service.Create(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrEmailTaken)

		admins, err := service.FindAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, admins, 1)
	})
}

func TestAdminService_Find(t *testing.T) {
	t.Run("FindAll_Empty", func(t *testing.T) {
		service := newTestAdminService(t)

		admins, err := service.FindAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, admins)
	})

	t.Run("FindOne_Success", func(t *testing.T) {
		service := newTestAdminService(t)

		created, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email:     "a@b.com",
			FirstName: "Alice",
			LastName:  "Bell",
			Password:  "Test123!",
		})
		require.NoError(t, err)

		found, err := service.FindOne(context.Background(), created.AdminID)
		require.NoError(t, err)
		assert.Equal(t, created, found)

		// Repeated reads return identical data
		again, err := service.FindOne(context.Background(), created.AdminID)
		require.NoError(t, err)
		assert.Equal(t, found, again)
	})

	t.Run("FindOne_NotFound", func(t *testing.T) {
		service := newTestAdminService(t)

		_, err := service.FindOne(context.Background(), "missing-id")
		assert.ErrorIs(t, err, models.ErrAdminNotFound)
	})

	t.Run("FindByEmail_Absent", func(t *testing.T) {
		service := newTestAdminService(t)

		entity, err := service.FindByEmail(context.Background(), "nobody@b.com")
		require.NoError(t, err)
		assert.Nil(t, entity)
	})
}

func TestAdminService_Update(t *testing.T) {
	t.Run("Update_PartialFields", func(t *testing.T) {
		service := newTestAdminService(t)

		created, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email:     "a@b.com",
			FirstName: "Alice",
			LastName:  "Bell",
			Password:  "Test123!",
		})
		require.NoError(t, err)

		updated, err := service.Update(context.Background(), created.AdminID, &models.UpdateAdminRequest{
			FirstName: strPtr("Alicia"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.FirstName)
		assert.Equal(t, "Bell", updated.LastName)
		assert.Equal(t, "a@b.com", updated.Email)
	})

	t.Run("Update_EmailConflict", func(t *testing.T) {
		service := newTestAdminService(t)

		_, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email: "a@b.com", FirstName: "Alice", LastName: "Bell", Password: "Test123!",
		})
		require.NoError(t, err)
		second, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email: "c@d.com", FirstName: "Carol", LastName: "Dunn", Password: "Test123!",
		})
		require.NoError(t, err)

		_, err = service.Update(context.Background(), second.AdminID, &models.UpdateAdminRequest{
			Email: strPtr("a@b.com"),
		})
		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})

	t.Run("Update_OwnEmailAllowed", func(t *testing.T) {
		service := newTestAdminService(t)

		created, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email: "a@b.com", FirstName: "Alice", LastName: "Bell", Password: "Test123!",
		})
		require.NoError(t, err)

		updated, err := service.Update(context.Background(), created.AdminID, &models.UpdateAdminRequest{
			Email: strPtr("a@b.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", updated.Email)
	})

	t.Run("Update_RehashesPassword", func(t *testing.T) {
		service := newTestAdminService(t)

		created, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email: "a@b.com", FirstName: "Alice", LastName: "Bell", Password: "Test123!",
		})
		require.NoError(t, err)

		_, err = service.Update(context.Background(), created.AdminID, &models.UpdateAdminRequest{
			Password: strPtr("Next456!"),
		})
		require.NoError(t, err)

		entity, err := service.FindByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)
		require.NotNil(t, entity)
		assert.False(t, service.auth.ValidatePassword("Test123!", entity.PasswordHash))
		assert.True(t, service.auth.ValidatePassword("Next456!", entity.PasswordHash))
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		service := newTestAdminService(t)

		_, err := service.Update(context.Background(), "missing-id", &models.UpdateAdminRequest{
			FirstName: strPtr("Nobody"),
		})
		assert.ErrorIs(t, err, models.ErrAdminNotFound)
	})
}

func TestAdminService_Remove(t *testing.T) {
	t.Run("Remove_Success", func(t *testing.T) {
		service := newTestAdminService(t)

		created, err := service.Create(context.Background(), &models.CreateAdminRequest{
			Email: "a@b.com", FirstName: "Alice", LastName: "Bell", Password: "Test123!",
		})
		require.NoError(t, err)

		require.NoError(t, service.Remove(context.Background(), created.AdminID))

		_, err = service.FindOne(context.Background(), created.AdminID)
		assert.ErrorIs(t, err, models.ErrAdminNotFound)
	})

	t.Run("Remove_NotFound", func(t *testing.T) {
		service := newTestAdminService(t)

		err := service.Remove(context.Background(), "missing-id")
		assert.ErrorIs(t, err, models.ErrAdminNotFound)
	})
}
