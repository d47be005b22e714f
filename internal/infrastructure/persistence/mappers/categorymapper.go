package mappers

import (
	"fmt"

	"floe/internal/domain/category"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/mapper"
)

// CategorySchemeMapper handles the conversion between scheme entities
// and persistence models.
type CategorySchemeMapper interface {
	ToEntity(model *models.CategorySchemeModel) (*category.Scheme, error)
	ToModel(entity *category.Scheme) (*models.CategorySchemeModel, error)
	ToEntities(models []*models.CategorySchemeModel) ([]*category.Scheme, error)
}

type categorySchemeMapperImpl struct{}

// NewCategorySchemeMapper creates a new category scheme mapper.
func NewCategorySchemeMapper() CategorySchemeMapper {
	return &categorySchemeMapperImpl{}
}

func (m *categorySchemeMapperImpl) ToEntity(model *models.CategorySchemeModel) (*category.Scheme, error) {
	if model == nil {
		return nil, nil
	}

	rootConcepts, err := decodeStrings(model.RootConcepts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scheme root concepts: %w", err)
	}
	metadata, err := decodeMap(model.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scheme metadata: %w", err)
	}

	entity, err := category.ReconstructScheme(
		model.ID,
		model.NID,
		model.Namespace,
		model.Name,
		rootConcepts,
		metadata,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct category scheme entity: %w", err)
	}
	return entity, nil
}

func (m *categorySchemeMapperImpl) ToModel(entity *category.Scheme) (*models.CategorySchemeModel, error) {
	if entity == nil {
		return nil, nil
	}

	rootConcepts, err := encodeStrings(entity.RootConcepts())
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheme root concepts: %w", err)
	}
	metadata, err := encodeMap(entity.Metadata())
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheme metadata: %w", err)
	}

	return &models.CategorySchemeModel{
		ID:           entity.ID(),
		NID:          entity.NID(),
		Namespace:    entity.Namespace(),
		Name:         entity.Name(),
		RootConcepts: rootConcepts,
		Metadata:     metadata,
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *categorySchemeMapperImpl) ToEntities(modelList []*models.CategorySchemeModel) ([]*category.Scheme, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CategorySchemeModel) uint { return model.ID })
}

// CategoryTermMapper handles the conversion between term entities and
// persistence models.
type CategoryTermMapper interface {
	ToEntity(model *models.CategoryTermModel) (*category.Term, error)
	ToModel(entity *category.Term) (*models.CategoryTermModel, error)
	ToEntities(models []*models.CategoryTermModel) ([]*category.Term, error)
}

type categoryTermMapperImpl struct{}

// NewCategoryTermMapper creates a new category term mapper.
func NewCategoryTermMapper() CategoryTermMapper {
	return &categoryTermMapperImpl{}
}

func (m *categoryTermMapperImpl) ToEntity(model *models.CategoryTermModel) (*category.Term, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := category.ReconstructTerm(
		model.ID,
		model.NID,
		model.SchemeID,
		model.Identifier,
		model.Name,
		model.Path,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct category term entity: %w", err)
	}
	return entity, nil
}

func (m *categoryTermMapperImpl) ToModel(entity *category.Term) (*models.CategoryTermModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.CategoryTermModel{
		ID:         entity.ID(),
		NID:        entity.NID(),
		SchemeID:   entity.SchemeID(),
		Identifier: entity.Identifier(),
		Name:       entity.Name(),
		Path:       entity.Path(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}, nil
}

func (m *categoryTermMapperImpl) ToEntities(modelList []*models.CategoryTermModel) ([]*category.Term, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CategoryTermModel) uint { return model.ID })
}

// CategorisationMapper handles the conversion between categorisation
// entities and persistence models.
type CategorisationMapper interface {
	ToEntity(model *models.CategorisationModel) (*category.Categorisation, error)
	ToModel(entity *category.Categorisation) (*models.CategorisationModel, error)
	ToEntities(models []*models.CategorisationModel) ([]*category.Categorisation, error)
}

type categorisationMapperImpl struct{}

// NewCategorisationMapper creates a new categorisation mapper.
func NewCategorisationMapper() CategorisationMapper {
	return &categorisationMapperImpl{}
}

func (m *categorisationMapperImpl) ToEntity(model *models.CategorisationModel) (*category.Categorisation, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := category.ReconstructCategorisation(model.ID, model.NID, model.ProjectID, model.TermID, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct categorisation entity: %w", err)
	}
	return entity, nil
}

func (m *categorisationMapperImpl) ToModel(entity *category.Categorisation) (*models.CategorisationModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.CategorisationModel{
		ID:        entity.ID(),
		NID:       entity.NID(),
		ProjectID: entity.ProjectID(),
		TermID:    entity.TermID(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}

func (m *categorisationMapperImpl) ToEntities(modelList []*models.CategorisationModel) ([]*category.Categorisation, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.CategorisationModel) uint { return model.ID })
}
