package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"floe/internal/domain/category"
	"floe/internal/infrastructure/persistence/mappers"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/db"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
)

// CategorySchemeRepository implements the scheme repository interface
type CategorySchemeRepository struct {
	db     *gorm.DB
	mapper mappers.CategorySchemeMapper
	logger logger.Interface
}

// NewCategorySchemeRepository creates a new category scheme repository
func NewCategorySchemeRepository(db *gorm.DB, logger logger.Interface) category.SchemeRepository {
	return &CategorySchemeRepository{
		db:     db,
		mapper: mappers.NewCategorySchemeMapper(),
		logger: logger,
	}
}

// Create creates a new scheme
func (r *CategorySchemeRepository) Create(ctx context.Context, s *category.Scheme) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		r.logger.Errorw("failed to map scheme entity to model", "error", err)
		return fmt.Errorf("failed to map scheme entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return category.ErrNamespaceExists
		}
		r.logger.Errorw("failed to create scheme", "namespace", model.Namespace, "error", err)
		return fmt.Errorf("failed to create scheme: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set scheme ID: %w", err)
	}

	r.logger.Debugw("category scheme created", "id", model.ID, "namespace", model.Namespace)
	return nil
}

// Update updates an existing scheme
func (r *CategorySchemeRepository) Update(ctx context.Context, s *category.Scheme) error {
	model, err := r.mapper.ToModel(s)
	if err != nil {
		r.logger.Errorw("failed to map scheme entity to model", "id", s.ID(), "error", err)
		return fmt.Errorf("failed to map scheme entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CategorySchemeModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"root_concepts": model.RootConcepts,
			"metadata":      model.Metadata,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update scheme", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update scheme: %w", result.Error)
	}

	return nil
}

// GetByID retrieves a scheme by internal ID
func (r *CategorySchemeRepository) GetByID(ctx context.Context, id uint) (*category.Scheme, error) {
	var model models.CategorySchemeModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get scheme by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get scheme: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNID retrieves a scheme by neutral identifier
func (r *CategorySchemeRepository) GetByNID(ctx context.Context, nid string) (*category.Scheme, error) {
	var model models.CategorySchemeModel
	if err := db.GetTxFromContext(ctx, r.db).Where("nid = ?", nid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get scheme by NID", "nid", nid, "error", err)
		return nil, fmt.Errorf("failed to get scheme: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNamespace retrieves a scheme by namespace
func (r *CategorySchemeRepository) GetByNamespace(ctx context.Context, namespace string) (*category.Scheme, error) {
	var model models.CategorySchemeModel
	if err := db.GetTxFromContext(ctx, r.db).Where("namespace = ?", namespace).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get scheme by namespace", "namespace", namespace, "error", err)
		return nil, fmt.Errorf("failed to get scheme: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// List retrieves a paginated list of schemes
func (r *CategorySchemeRepository) List(ctx context.Context, page, pageSize int) ([]*category.Scheme, int64, error) {
	var schemeModels []*models.CategorySchemeModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.CategorySchemeModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count schemes", "error", err)
		return nil, 0, fmt.Errorf("failed to count schemes: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("namespace ASC").Offset(offset).Limit(pageSize).Find(&schemeModels).Error; err != nil {
		r.logger.Errorw("failed to list schemes", "error", err)
		return nil, 0, fmt.Errorf("failed to list schemes: %w", err)
	}

	entities, err := r.mapper.ToEntities(schemeModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map schemes: %w", err)
	}
	return entities, total, nil
}

// CategoryTermRepository implements the term repository interface
type CategoryTermRepository struct {
	db     *gorm.DB
	mapper mappers.CategoryTermMapper
	logger logger.Interface
}

// NewCategoryTermRepository creates a new category term repository
func NewCategoryTermRepository(db *gorm.DB, logger logger.Interface) category.TermRepository {
	return &CategoryTermRepository{
		db:     db,
		mapper: mappers.NewCategoryTermMapper(),
		logger: logger,
	}
}

// Create creates a new term
func (r *CategoryTermRepository) Create(ctx context.Context, t *category.Term) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		r.logger.Errorw("failed to map term entity to model", "error", err)
		return fmt.Errorf("failed to map term entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create term", "identifier", model.Identifier, "error", err)
		return fmt.Errorf("failed to create term: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set term ID: %w", err)
	}

	r.logger.Debugw("category term created", "id", model.ID, "identifier", model.Identifier)
	return nil
}

// Update updates an existing term
func (r *CategoryTermRepository) Update(ctx context.Context, t *category.Term) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		r.logger.Errorw("failed to map term entity to model", "id", t.ID(), "error", err)
		return fmt.Errorf("failed to map term entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.CategoryTermModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"scheme_id":  model.SchemeID,
			"name":       model.Name,
			"path":       model.Path,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update term", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update term: %w", result.Error)
	}

	return nil
}

// GetByID retrieves a term by internal ID
func (r *CategoryTermRepository) GetByID(ctx context.Context, id uint) (*category.Term, error) {
	var model models.CategoryTermModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get term by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get term: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNID retrieves a term by neutral identifier
func (r *CategoryTermRepository) GetByNID(ctx context.Context, nid string) (*category.Term, error) {
	var model models.CategoryTermModel
	if err := db.GetTxFromContext(ctx, r.db).Where("nid = ?", nid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get term by NID", "nid", nid, "error", err)
		return nil, fmt.Errorf("failed to get term: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByIdentifier retrieves a term by its external identifier
func (r *CategoryTermRepository) GetByIdentifier(ctx context.Context, identifier string) (*category.Term, error) {
	var model models.CategoryTermModel
	if err := db.GetTxFromContext(ctx, r.db).Where("identifier = ?", identifier).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get term by identifier", "identifier", identifier, "error", err)
		return nil, fmt.Errorf("failed to get term: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// ListBySchemeID retrieves all terms in a scheme
func (r *CategoryTermRepository) ListBySchemeID(ctx context.Context, schemeID uint) ([]*category.Term, error) {
	var termModels []*models.CategoryTermModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("scheme_id = ?", schemeID).
		Order("path ASC").
		Find(&termModels).Error; err != nil {
		r.logger.Errorw("failed to list terms", "scheme_id", schemeID, "error", err)
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	return r.mapper.ToEntities(termModels)
}

// List retrieves a paginated list of terms
func (r *CategoryTermRepository) List(ctx context.Context, page, pageSize int) ([]*category.Term, int64, error) {
	var termModels []*models.CategoryTermModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.CategoryTermModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count terms", "error", err)
		return nil, 0, fmt.Errorf("failed to count terms: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("path ASC").Offset(offset).Limit(pageSize).Find(&termModels).Error; err != nil {
		r.logger.Errorw("failed to list terms", "error", err)
		return nil, 0, fmt.Errorf("failed to list terms: %w", err)
	}

	entities, err := r.mapper.ToEntities(termModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map terms: %w", err)
	}
	return entities, total, nil
}

// CategorisationRepository implements the categorisation repository interface
type CategorisationRepository struct {
	db     *gorm.DB
	mapper mappers.CategorisationMapper
	logger logger.Interface
}

// NewCategorisationRepository creates a new categorisation repository
func NewCategorisationRepository(db *gorm.DB, logger logger.Interface) category.CategorisationRepository {
	return &CategorisationRepository{
		db:     db,
		mapper: mappers.NewCategorisationMapper(),
		logger: logger,
	}
}

// Create creates a new categorisation
func (r *CategorisationRepository) Create(ctx context.Context, c *category.Categorisation) error {
	model, err := r.mapper.ToModel(c)
	if err != nil {
		r.logger.Errorw("failed to map categorisation entity to model", "error", err)
		return fmt.Errorf("failed to map categorisation entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return category.ErrDuplicateLink
		}
		r.logger.Errorw("failed to create categorisation", "error", err)
		return fmt.Errorf("failed to create categorisation: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set categorisation ID: %w", err)
	}

	return nil
}

// Delete removes a categorisation row
func (r *CategorisationRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.CategorisationModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete categorisation", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete categorisation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return category.ErrCategorisationNotFound
	}
	return nil
}

// ListByProjectID retrieves all categorisations for a project
func (r *CategorisationRepository) ListByProjectID(ctx context.Context, projectID uint) ([]*category.Categorisation, error) {
	var categorisationModels []*models.CategorisationModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Find(&categorisationModels).Error; err != nil {
		r.logger.Errorw("failed to list categorisations", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("failed to list categorisations: %w", err)
	}
	return r.mapper.ToEntities(categorisationModels)
}
