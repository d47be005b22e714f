package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"floe/internal/domain/project"
	"floe/internal/infrastructure/persistence/mappers"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/db"
	"floe/internal/shared/logger"
)

// ProjectRepository implements the project repository interface
type ProjectRepository struct {
	db     *gorm.DB
	mapper mappers.ProjectMapper
	logger logger.Interface
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB, logger logger.Interface) project.Repository {
	return &ProjectRepository{
		db:     db,
		mapper: mappers.NewProjectMapper(),
		logger: logger,
	}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		r.logger.Errorw("failed to map project entity to model", "error", err)
		return fmt.Errorf("failed to map project entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create project", "error", err)
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set project ID: %w", err)
	}

	r.logger.Debugw("project created", "id", model.ID, "grant_reference", model.GrantReference)
	return nil
}

// Update overwrites an existing project row in place
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		r.logger.Errorw("failed to map project entity to model", "id", p.ID(), "error", err)
		return fmt.Errorf("failed to map project entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.ProjectModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":           model.Title,
			"abstract":        model.Abstract,
			"publications":    model.Publications,
			"duration_start":  model.DurationStart,
			"duration_end":    model.DurationEnd,
			"access_start":    model.AccessStart,
			"grant_reference": model.GrantReference,
			"lead_project":    model.LeadProject,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update project", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update project: %w", result.Error)
	}

	return nil
}

// GetByID retrieves a project by internal ID
func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	var model models.ProjectModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get project by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNID retrieves a project by neutral identifier
func (r *ProjectRepository) GetByNID(ctx context.Context, nid string) (*project.Project, error) {
	var model models.ProjectModel
	if err := db.GetTxFromContext(ctx, r.db).Where("nid = ?", nid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get project by NID", "nid", nid, "error", err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// List retrieves a paginated list of projects
func (r *ProjectRepository) List(ctx context.Context, page, pageSize int) ([]*project.Project, int64, error) {
	var projectModels []*models.ProjectModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ProjectModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count projects", "error", err)
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&projectModels).Error; err != nil {
		r.logger.Errorw("failed to list projects", "error", err)
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	entities, err := r.mapper.ToEntities(projectModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map projects: %w", err)
	}
	return entities, total, nil
}

// AllocationRepository implements the allocation repository interface
type AllocationRepository struct {
	db     *gorm.DB
	mapper mappers.AllocationMapper
	logger logger.Interface
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *gorm.DB, logger logger.Interface) project.AllocationRepository {
	return &AllocationRepository{
		db:     db,
		mapper: mappers.NewAllocationMapper(),
		logger: logger,
	}
}

// Create creates a new allocation
func (r *AllocationRepository) Create(ctx context.Context, a *project.Allocation) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		r.logger.Errorw("failed to map allocation entity to model", "error", err)
		return fmt.Errorf("failed to map allocation entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create allocation", "error", err)
		return fmt.Errorf("failed to create allocation: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set allocation ID: %w", err)
	}

	return nil
}

// GetByGrantID retrieves the allocation linking a grant to its project
func (r *AllocationRepository) GetByGrantID(ctx context.Context, grantID uint) (*project.Allocation, error) {
	var model models.AllocationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("grant_id = ?", grantID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get allocation by grant ID", "grant_id", grantID, "error", err)
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// ListByProjectID retrieves all allocations for a project
func (r *AllocationRepository) ListByProjectID(ctx context.Context, projectID uint) ([]*project.Allocation, error) {
	var allocationModels []*models.AllocationModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Find(&allocationModels).Error; err != nil {
		r.logger.Errorw("failed to list allocations", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return r.mapper.ToEntities(allocationModels)
}

// ParticipantRepository implements the participant repository interface
type ParticipantRepository struct {
	db     *gorm.DB
	mapper mappers.ParticipantMapper
	logger logger.Interface
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB, logger logger.Interface) project.ParticipantRepository {
	return &ParticipantRepository{
		db:     db,
		mapper: mappers.NewParticipantMapper(),
		logger: logger,
	}
}

// Create creates a new participant
func (r *ParticipantRepository) Create(ctx context.Context, p *project.Participant) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		r.logger.Errorw("failed to map participant entity to model", "error", err)
		return fmt.Errorf("failed to map participant entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create participant", "error", err)
		return fmt.Errorf("failed to create participant: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set participant ID: %w", err)
	}

	return nil
}

// GetByIdentity retrieves the participant row for one project/person/role combination
func (r *ParticipantRepository) GetByIdentity(ctx context.Context, projectID, personID uint, role project.Role) (*project.Participant, error) {
	var model models.ParticipantModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ? AND person_id = ? AND role = ?", projectID, personID, string(role)).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get participant by identity", "project_id", projectID, "person_id", personID, "error", err)
		return nil, fmt.Errorf("failed to get participant by identity: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// ListByProjectID retrieves all participants for a project
func (r *ParticipantRepository) ListByProjectID(ctx context.Context, projectID uint) ([]*project.Participant, error) {
	var participantModels []*models.ParticipantModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("project_id = ?", projectID).
		Find(&participantModels).Error; err != nil {
		r.logger.Errorw("failed to list participants", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return r.mapper.ToEntities(participantModels)
}

// ListByPersonID retrieves all participations for a person
func (r *ParticipantRepository) ListByPersonID(ctx context.Context, personID uint) ([]*project.Participant, error) {
	var participantModels []*models.ParticipantModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("person_id = ?", personID).
		Find(&participantModels).Error; err != nil {
		r.logger.Errorw("failed to list participants", "person_id", personID, "error", err)
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return r.mapper.ToEntities(participantModels)
}
