package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"floe/internal/domain/organisation"
	"floe/internal/infrastructure/persistence/mappers"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/db"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
)

// OrganisationRepository implements the organisation repository interface
type OrganisationRepository struct {
	db     *gorm.DB
	mapper mappers.OrganisationMapper
	logger logger.Interface
}

// NewOrganisationRepository creates a new organisation repository
func NewOrganisationRepository(db *gorm.DB, logger logger.Interface) organisation.Repository {
	return &OrganisationRepository{
		db:     db,
		mapper: mappers.NewOrganisationMapper(),
		logger: logger,
	}
}

// Create creates a new organisation
func (r *OrganisationRepository) Create(ctx context.Context, org *organisation.Organisation) error {
	model, err := r.mapper.ToModel(org)
	if err != nil {
		r.logger.Errorw("failed to map organisation entity to model", "error", err)
		return fmt.Errorf("failed to map organisation entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return organisation.ErrRegistryIDExists
		}
		r.logger.Errorw("failed to create organisation", "error", err)
		return fmt.Errorf("failed to create organisation: %w", err)
	}

	if err := org.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set organisation ID: %w", err)
	}

	r.logger.Debugw("organisation created", "id", model.ID, "name", model.Name)
	return nil
}

// Update updates an existing organisation
func (r *OrganisationRepository) Update(ctx context.Context, org *organisation.Organisation) error {
	model, err := r.mapper.ToModel(org)
	if err != nil {
		r.logger.Errorw("failed to map organisation entity to model", "id", org.ID(), "error", err)
		return fmt.Errorf("failed to map organisation entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.OrganisationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"acronym":    model.Acronym,
			"website":    model.Website,
			"logo_url":   model.LogoURL,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update organisation", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update organisation: %w", result.Error)
	}

	return nil
}

// GetByID retrieves an organisation by internal ID
func (r *OrganisationRepository) GetByID(ctx context.Context, id uint) (*organisation.Organisation, error) {
	var model models.OrganisationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get organisation by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNID retrieves an organisation by neutral identifier
func (r *OrganisationRepository) GetByNID(ctx context.Context, nid string) (*organisation.Organisation, error) {
	var model models.OrganisationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("nid = ?", nid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get organisation by NID", "nid", nid, "error", err)
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByRegistryID retrieves an organisation by external registry identifier
func (r *OrganisationRepository) GetByRegistryID(ctx context.Context, registryID string) (*organisation.Organisation, error) {
	var model models.OrganisationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("registry_id = ?", registryID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get organisation by registry ID", "registry_id", registryID, "error", err)
		return nil, fmt.Errorf("failed to get organisation: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// List retrieves a paginated list of organisations
func (r *OrganisationRepository) List(ctx context.Context, page, pageSize int) ([]*organisation.Organisation, int64, error) {
	var orgModels []*models.OrganisationModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.OrganisationModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count organisations", "error", err)
		return nil, 0, fmt.Errorf("failed to count organisations: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("name ASC").Offset(offset).Limit(pageSize).Find(&orgModels).Error; err != nil {
		r.logger.Errorw("failed to list organisations", "error", err)
		return nil, 0, fmt.Errorf("failed to list organisations: %w", err)
	}

	entities, err := r.mapper.ToEntities(orgModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map organisations: %w", err)
	}
	return entities, total, nil
}
