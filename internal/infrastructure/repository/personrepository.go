package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"floe/internal/domain/person"
	"floe/internal/infrastructure/persistence/mappers"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/db"
	"floe/internal/shared/logger"
)

// PersonRepository implements the person repository interface
type PersonRepository struct {
	db     *gorm.DB
	mapper mappers.PersonMapper
	logger logger.Interface
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *gorm.DB, logger logger.Interface) person.Repository {
	return &PersonRepository{
		db:     db,
		mapper: mappers.NewPersonMapper(),
		logger: logger,
	}
}

// Create creates a new person
func (r *PersonRepository) Create(ctx context.Context, p *person.Person) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		r.logger.Errorw("failed to map person entity to model", "error", err)
		return fmt.Errorf("failed to map person entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create person", "error", err)
		return fmt.Errorf("failed to create person: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set person ID: %w", err)
	}

	r.logger.Debugw("person created", "id", model.ID, "last_name", model.LastName)
	return nil
}

// GetByID retrieves a person by internal ID
func (r *PersonRepository) GetByID(ctx context.Context, id uint) (*person.Person, error) {
	var model models.PersonModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get person by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNID retrieves a person by neutral identifier
func (r *PersonRepository) GetByNID(ctx context.Context, nid string) (*person.Person, error) {
	var model models.PersonModel
	if err := db.GetTxFromContext(ctx, r.db).Where("nid = ?", nid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get person by NID", "nid", nid, "error", err)
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// GetByNameAndOrganisation retrieves a person by first name, last name
// and employing organisation
func (r *PersonRepository) GetByNameAndOrganisation(ctx context.Context, firstName, lastName string, organisationID uint) (*person.Person, error) {
	var model models.PersonModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("first_name = ? AND last_name = ? AND organisation_id = ?", firstName, lastName, organisationID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get person by name and organisation",
			"first_name", firstName, "last_name", lastName, "organisation_id", organisationID, "error", err)
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// List retrieves a paginated list of people
func (r *PersonRepository) List(ctx context.Context, page, pageSize int) ([]*person.Person, int64, error) {
	var personModels []*models.PersonModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.PersonModel{})
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count people", "error", err)
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("last_name ASC, first_name ASC").Offset(offset).Limit(pageSize).Find(&personModels).Error; err != nil {
		r.logger.Errorw("failed to list people", "error", err)
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}

	entities, err := r.mapper.ToEntities(personModels)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map people: %w", err)
	}
	return entities, total, nil
}
