package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/enterprise-service/admin-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnterpriseService handles enterprise-related operations, including the
// exclusively-owned settings child.
type EnterpriseService struct {
	db *gorm.DB
}

// NewEnterpriseService creates a new enterprise service
func NewEnterpriseService(db *gorm.DB) *EnterpriseService {
	return &EnterpriseService{db: db}
}

// Create persists a new enterprise. When the request carries settings, the
// child row is created in the same cascaded write as the parent.
func (s *EnterpriseService) Create(ctx context.Context, req *models.CreateEnterpriseRequest) (*models.EnterpriseResponse, error) {
	enterprise := models.Enterprise{
		EnterpriseID: uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Website:      req.Website,
		Industry:     req.Industry,
	}
	enterprise.Settings = newSettings(enterprise.EnterpriseID, req.Settings)

	if err := s.db.WithContext(ctx).Create(&enterprise).Error; err != nil {
		return nil, fmt.Errorf("failed to create enterprise: %w", err)
	}

	slog.Info("Enterprise created", "enterpriseID", enterprise.EnterpriseID, "name", enterprise.Name)
	return toEnterpriseResponse(&enterprise), nil
}

// FindAll retrieves all enterprises with their settings eagerly attached
func (s *EnterpriseService) FindAll(ctx context.Context) ([]models.EnterpriseResponse, error) {
	var enterprises []models.Enterprise
	err := s.db.WithContext(ctx).Preload("Settings").Order("created_at DESC").Find(&enterprises).Error
	if err != nil {
		return nil, err
	}

	responses := make([]models.EnterpriseResponse, 0, len(enterprises))
	for i := range enterprises {
		responses = append(responses, *toEnterpriseResponse(&enterprises[i]))
	}
	return responses, nil
}

// FindOne retrieves an enterprise by ID with its settings attached
func (s *EnterpriseService) FindOne(ctx context.Context, enterpriseID string) (*models.EnterpriseResponse, error) {
	enterprise, err := s.findEntity(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	return toEnterpriseResponse(enterprise), nil
}

// Update applies a partial update. Top-level fields are shallow-merged; a
// settings partial merges into the existing settings row, or creates one with
// defaults when the enterprise has none yet.
func (s *EnterpriseService) Update(ctx context.Context, enterpriseID string, req *models.UpdateEnterpriseRequest) (*models.EnterpriseResponse, error) {
	enterprise, err := s.findEntity(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		enterprise.Name = *req.Name
	}
	if req.Description != nil {
		enterprise.Description = req.Description
	}
	if req.Website != nil {
		enterprise.Website = req.Website
	}
	if req.Industry != nil {
		enterprise.Industry = req.Industry
	}

	settingsCreated := false
	if req.Settings != nil {
		if enterprise.Settings == nil {
			enterprise.Settings = newSettings(enterprise.EnterpriseID, req.Settings)
			settingsCreated = true
		} else {
			if req.Settings.ReportGenerationType != nil {
				enterprise.Settings.ReportGenerationType = *req.Settings.ReportGenerationType
			}
			if req.Settings.AccessType != nil {
				enterprise.Settings.AccessType = *req.Settings.AccessType
			}
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Settings").Save(enterprise).Error; err != nil {
			return err
		}
		if enterprise.Settings != nil {
			// Save on a fresh row with a preset id updates nothing, so the
			// create-if-absent branch inserts explicitly.
			op := tx.Save
			if settingsCreated {
				op = tx.Create
			}
			if err := op(enterprise.Settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update enterprise: %w", err)
	}

	return toEnterpriseResponse(enterprise), nil
}

// Remove deletes an enterprise and its settings row. The association delete
// covers databases without referential actions; the schema-level cascade
// covers everything else.
func (s *EnterpriseService) Remove(ctx context.Context, enterpriseID string) error {
	enterprise, err := s.findEntity(ctx, enterpriseID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Select(clause.Associations).Delete(enterprise).Error; err != nil {
		return fmt.Errorf("failed to delete enterprise: %w", err)
	}
	slog.Info("Enterprise deleted", "enterpriseID", enterpriseID)
	return nil
}

func (s *EnterpriseService) findEntity(ctx context.Context, enterpriseID string) (*models.Enterprise, error) {
	var enterprise models.Enterprise
	err := s.db.WithContext(ctx).Preload("Settings").First(&enterprise, "enterprise_id = ?", enterpriseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrEnterpriseNotFound
		}
		return nil, err
	}
	return &enterprise, nil
}

// newSettings builds a settings child with enum defaults applied for fields
// the input omits. A nil input yields defaults across the board.
func newSettings(enterpriseID string, input *models.EnterpriseSettingsInput) *models.EnterpriseSettings {
	settings := &models.EnterpriseSettings{
		SettingID:            uuid.New().String(),
		ReportGenerationType: models.ReportGenerationImmediate,
		AccessType:           models.AccessTypeFull,
		EnterpriseID:         enterpriseID,
	}
	if input != nil {
		if input.ReportGenerationType != nil {
			settings.ReportGenerationType = *input.ReportGenerationType
		}
		if input.AccessType != nil {
			settings.AccessType = *input.AccessType
		}
	}
	return settings
}

func toEnterpriseResponse(enterprise *models.Enterprise) *models.EnterpriseResponse {
	response := &models.EnterpriseResponse{
		EnterpriseID: enterprise.EnterpriseID,
		Name:         enterprise.Name,
		Description:  enterprise.Description,
		Website:      enterprise.Website,
		Industry:     enterprise.Industry,
		CreatedAt:    enterprise.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    enterprise.UpdatedAt.Format(time.RFC3339),
	}
	if enterprise.Settings != nil {
		response.Settings = &models.EnterpriseSettingsResponse{
			SettingID:            enterprise.Settings.SettingID,
			ReportGenerationType: enterprise.Settings.ReportGenerationType,
			AccessType:           enterprise.Settings.AccessType,
			CreatedAt:            enterprise.Settings.CreatedAt.Format(time.RFC3339),
			UpdatedAt:            enterprise.Settings.UpdatedAt.Format(time.RFC3339),
		}
	}
	return response
}
