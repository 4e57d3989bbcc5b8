package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminService handles admin-related operations
type AdminService struct {
	db   *gorm.DB
	auth *AuthService
}

// NewAdminService creates a new admin service
func NewAdminService(db *gorm.DB, auth *AuthService) *AdminService {
	return &AdminService{db: db, auth: auth}
}

// Create persists a new admin. The email pre-check is not atomic with the
// write; the unique constraint on email is the final arbiter and a violation
// at write time surfaces as the same conflict error.
func (s *AdminService) Create(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminResponse, error) {
	existing, err := s.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{
		AdminID:      uuid.New().String(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("Admin created", "adminID", admin.AdminID)
	return toAdminResponse(&admin), nil
}

// FindAll retrieves all admins
func (s *AdminService) FindAll(ctx context.Context) ([]models.AdminResponse, error) {
	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}

	responses := make([]models.AdminResponse, 0, len(admins))
	for i := range admins {
		responses = append(responses, *toAdminResponse(&admins[i]))
	}
	return responses, nil
}

// FindOne retrieves an admin by ID
func (s *AdminService) FindOne(ctx context.Context, adminID string) (*models.AdminResponse, error) {
	admin, err := s.findEntity(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return toAdminResponse(admin), nil
}

// FindByEmail retrieves the admin entity with the given email, or nil when no
// such admin exists. Absence is not an error; the caller decides what it
// means (uniqueness check vs login lookup).
func (s *AdminService) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Update applies a partial update to an admin. An email change re-validates
// uniqueness; keeping the current email is always allowed.
func (s *AdminService) Update(ctx context.Context, adminID string, req *models.UpdateAdminRequest) (*models.AdminResponse, error) {
	admin, err := s.findEntity(ctx, adminID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != admin.Email {
		existing, err := s.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.ErrEmailTaken
		}
		admin.Email = *req.Email
	}
	if req.FirstName != nil {
		admin.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		admin.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(admin).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}
	return toAdminResponse(admin), nil
}

// Remove deletes an admin by ID
func (s *AdminService) Remove(ctx context.Context, adminID string) error {
	admin, err := s.findEntity(ctx, adminID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(admin).Error; err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	slog.Info("Admin deleted", "adminID", adminID)
	return nil
}

func (s *AdminService) findEntity(ctx context.Context, adminID string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).First(&admin, "admin_id = ?", adminID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func toAdminResponse(admin *models.Admin) *models.AdminResponse {
	return &models.AdminResponse{
		AdminID:   admin.AdminID,
		Email:     admin.Email,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		CreatedAt: admin.CreatedAt.Format(time.RFC3339),
		UpdatedAt: admin.UpdatedAt.Format(time.RFC3339),
	}
}

// isUniqueViolation matches unique-constraint errors across the postgres
// driver and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
