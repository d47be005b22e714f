package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"floe/internal/domain/grant"
	"floe/internal/infrastructure/persistence/mappers"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/db"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
)

// GrantRepository implements the grant repository interface
type GrantRepository struct {
	db     *gorm.DB
	mapper mappers.GrantMapper
	logger logger.Interface
}

// NewGrantRepository creates a new grant repository
func NewGrantRepository(db *gorm.DB, logger logger.Interface) grant.Repository {
	return &GrantRepository{
		db:     db,
		mapper: mappers.NewGrantMapper(),
		logger: logger,
	}
}

// Create creates a new grant
func (r *GrantRepository) Create(ctx context.Context, g *grant.Grant) error {
	model, err := r.mapper.ToModel(g)
	if err != nil {
		r.logger.Errorw("failed to map grant entity to model", "error", err)
		return fmt.Errorf("failed to map grant entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return grant.ErrReferenceExists
		}
		r.logger.Errorw("failed to create grant", "reference", model.Reference, "error", err)
		return fmt.Errorf("failed to create grant: %w", err)
	}

	if err := g.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set grant ID: %w", err)
	}

	r.logger.Debugw("grant created", "id", model.ID, "reference", model.Reference)
	return nil
}

// Update overwrites an existing grant row in place
func (r *GrantRepository) Update(ctx context.Context, g *grant.Grant) error {
	model, err := r.mapper.ToModel(g)
	if err != nil {
		r.logger.Errorw("failed to map grant entity to model", "id", g.ID(), "error", err)
		return fmt.Errorf("failed to map grant entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.GrantModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":          model.Title,
			"abstract":       model.Abstract,
			"publications":   model.Publications,
			"duration_start": model.DurationStart,
			"duration_end":   model.DurationEnd,
			"status":         model.Status,
			"total_funds":    model.TotalFunds,
			"currency":       model.Currency,
			"funder_id":      model.FunderID,
			"lead_project":   model.LeadProject,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update grant", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update grant: %w", result.Error)
	}

	return nil
}

// GetByID retrieves a grant by internal ID
func (r *GrantRepository) GetByID(ctx context.Context, id uint) (*grant.Grant, error) {
	var model models.GrantModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNID retrieves a grant by neutral identifier
func (r *GrantRepository) GetByNID(ctx context.Context, nid string) (*grant.Grant, error) {
	var model models.GrantModel
	if err := db.GetTxFromContext(ctx, r.db).Where("nid = ?", nid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant by NID", "nid", nid, "error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByReference retrieves a grant by funder reference
func (r *GrantRepository) GetByReference(ctx context.Context, reference string) (*grant.Grant, error) {
	var model models.GrantModel
	if err := db.GetTxFromContext(ctx, r.db).Where("reference = ?", reference).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant by reference", "reference", reference, "error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// ExistsByReference checks whether a grant with the reference exists
func (r *GrantRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.GrantModel{}).
		Where("reference = ?", reference).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check grant existence", "reference", reference, "error", err)
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return count > 0, nil
}

// List retrieves a paginated list of grants
func (r *GrantRepository) List(ctx context.Context, page, pageSize int) ([]*grant.Grant, int64, error) {
	var grantModels []*models.GrantModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.GrantModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count grants", "error", err)
		return nil, 0, fmt.Errorf("failed to count grants: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("reference ASC").Offset(offset).Limit(pageSize).Find(&grantModels).Error; err != nil {
		r.logger.Errorw("failed to list grants", "error", err)
		return nil, 0, fmt.Errorf("failed to list grants: %w", err)
	}

	entities, err := r.mapper.ToEntities(grantModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map grants: %w", err)
	}
	return entities, total, nil
}
