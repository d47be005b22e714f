package mappers

import (
	"fmt"

	"floe/internal/domain/grant"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/daterange"
	"floe/internal/shared/mapper"
)

// GrantMapper handles the conversion between domain entities and
// persistence models.
type GrantMapper interface {
	ToEntity(model *models.GrantModel) (*grant.Grant, error)
	ToModel(entity *grant.Grant) (*models.GrantModel, error)
	ToEntities(models []*models.GrantModel) ([]*grant.Grant, error)
}

type grantMapperImpl struct{}

// NewGrantMapper creates a new grant mapper.
func NewGrantMapper() GrantMapper {
	return &grantMapperImpl{}
}

func (m *grantMapperImpl) ToEntity(model *models.GrantModel) (*grant.Grant, error) {
	if model == nil {
		return nil, nil
	}

	publications, err := decodeStrings(model.Publications)
	if err != nil {
		return nil, fmt.Errorf("failed to decode grant publications: %w", err)
	}

	entity, err := grant.Reconstruct(
		model.ID,
		model.NID,
		model.Reference,
		grant.Attributes{
			Title:        model.Title,
			Abstract:     model.Abstract,
			Publications: publications,
			Duration:     daterange.Reconstruct(model.DurationStart, model.DurationEnd),
			Status:       grant.Status(model.Status),
			TotalFunds:   model.TotalFunds,
			Currency:     model.Currency,
			FunderID:     model.FunderID,
			LeadProject:  model.LeadProject,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct grant entity: %w", err)
	}
	return entity, nil
}

func (m *grantMapperImpl) ToModel(entity *grant.Grant) (*models.GrantModel, error) {
	if entity == nil {
		return nil, nil
	}

	publications, err := encodeStrings(entity.Publications())
	if err != nil {
		return nil, fmt.Errorf("failed to encode grant publications: %w", err)
	}

	return &models.GrantModel{
		ID:            entity.ID(),
		NID:           entity.NID(),
		Reference:     entity.Reference(),
		Title:         entity.Title(),
		Abstract:      entity.Abstract(),
		Publications:  publications,
		DurationStart: entity.Duration().Start(),
		DurationEnd:   entity.Duration().End(),
		Status:        entity.Status().String(),
		TotalFunds:    entity.TotalFunds(),
		Currency:      entity.Currency(),
		FunderID:      entity.FunderID(),
		LeadProject:   entity.LeadProject(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *grantMapperImpl) ToEntities(modelList []*models.GrantModel) ([]*grant.Grant, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.GrantModel) uint { return model.ID })
}
