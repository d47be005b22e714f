package mappers

import (
	"fmt"

	"floe/internal/domain/person"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/mapper"
)

// PersonMapper handles the conversion between domain entities and
// persistence models.
type PersonMapper interface {
	ToEntity(model *models.PersonModel) (*person.Person, error)
	ToModel(entity *person.Person) (*models.PersonModel, error)
	ToEntities(models []*models.PersonModel) ([]*person.Person, error)
}

type personMapperImpl struct{}

// NewPersonMapper creates a new person mapper.
func NewPersonMapper() PersonMapper {
	return &personMapperImpl{}
}

func (m *personMapperImpl) ToEntity(model *models.PersonModel) (*person.Person, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := person.Reconstruct(
		model.ID,
		model.NID,
		model.FirstName,
		model.LastName,
		model.ExternalID,
		model.OrganisationID,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct person entity: %w", err)
	}
	return entity, nil
}

func (m *personMapperImpl) ToModel(entity *person.Person) (*models.PersonModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PersonModel{
		ID:             entity.ID(),
		NID:            entity.NID(),
		FirstName:      entity.FirstName(),
		LastName:       entity.LastName(),
		ExternalID:     entity.ExternalID(),
		OrganisationID: entity.OrganisationID(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *personMapperImpl) ToEntities(modelList []*models.PersonModel) ([]*person.Person, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.PersonModel) uint { return model.ID })
}
