package mappers

import (
	"fmt"

	"floe/internal/domain/organisation"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/mapper"
)

// OrganisationMapper handles the conversion between domain entities and
// persistence models.
type OrganisationMapper interface {
	ToEntity(model *models.OrganisationModel) (*organisation.Organisation, error)
	ToModel(entity *organisation.Organisation) (*models.OrganisationModel, error)
	ToEntities(models []*models.OrganisationModel) ([]*organisation.Organisation, error)
}

type organisationMapperImpl struct{}

// NewOrganisationMapper creates a new organisation mapper.
func NewOrganisationMapper() OrganisationMapper {
	return &organisationMapperImpl{}
}

func (m *organisationMapperImpl) ToEntity(model *models.OrganisationModel) (*organisation.Organisation, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := organisation.Reconstruct(
		model.ID,
		model.NID,
		model.RegistryID,
		model.Name,
		model.Acronym,
		model.Website,
		model.LogoURL,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct organisation entity: %w", err)
	}
	return entity, nil
}

func (m *organisationMapperImpl) ToModel(entity *organisation.Organisation) (*models.OrganisationModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OrganisationModel{
		ID:         entity.ID(),
		NID:        entity.NID(),
		RegistryID: entity.RegistryID(),
		Name:       entity.Name(),
		Acronym:    entity.Acronym(),
		Website:    entity.Website(),
		LogoURL:    entity.LogoURL(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *organisationMapperImpl) ToEntities(modelList []*models.OrganisationModel) ([]*organisation.Organisation, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.OrganisationModel) uint { return model.ID })
}
