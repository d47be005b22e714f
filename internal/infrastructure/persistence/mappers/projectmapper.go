package mappers

import (
	"fmt"

	"floe/internal/domain/project"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/shared/daterange"
	"floe/internal/shared/mapper"
)

// ProjectMapper handles the conversion between domain entities and
// persistence models.
type ProjectMapper interface {
	ToEntity(model *models.ProjectModel) (*project.Project, error)
	ToModel(entity *project.Project) (*models.ProjectModel, error)
	ToEntities(models []*models.ProjectModel) ([]*project.Project, error)
}

type projectMapperImpl struct{}

// NewProjectMapper creates a new project mapper.
func NewProjectMapper() ProjectMapper {
	return &projectMapperImpl{}
}

func (m *projectMapperImpl) ToEntity(model *models.ProjectModel) (*project.Project, error) {
	if model == nil {
		return nil, nil
	}

	publications, err := decodeStrings(model.Publications)
	if err != nil {
		return nil, fmt.Errorf("failed to decode project publications: %w", err)
	}

	entity, err := project.Reconstruct(
		model.ID,
		model.NID,
		project.Attributes{
			Title:           model.Title,
			Abstract:        model.Abstract,
			Publications:    publications,
			ProjectDuration: daterange.Reconstruct(model.DurationStart, model.DurationEnd),
			GrantReference:  model.GrantReference,
			LeadProject:     model.LeadProject,
		},
		daterange.NewOpenEnded(model.AccessStart),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct project entity: %w", err)
	}
	return entity, nil
}

func (m *projectMapperImpl) ToModel(entity *project.Project) (*models.ProjectModel, error) {
	if entity == nil {
		return nil, nil
	}

	publications, err := encodeStrings(entity.Publications())
	if err != nil {
		return nil, fmt.Errorf("failed to encode project publications: %w", err)
	}

	return &models.ProjectModel{
		ID:             entity.ID(),
		NID:            entity.NID(),
		Title:          entity.Title(),
		Abstract:       entity.Abstract(),
		Publications:   publications,
		DurationStart:  entity.ProjectDuration().Start(),
		DurationEnd:    entity.ProjectDuration().End(),
		AccessStart:    entity.AccessDuration().Start(),
		GrantReference: entity.GrantReference(),
		LeadProject:    entity.LeadProject(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *projectMapperImpl) ToEntities(modelList []*models.ProjectModel) ([]*project.Project, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.ProjectModel) uint { return model.ID })
}

// AllocationMapper handles the conversion between allocation entities
// and persistence models.
type AllocationMapper interface {
	ToEntity(model *models.AllocationModel) (*project.Allocation, error)
	ToModel(entity *project.Allocation) (*models.AllocationModel, error)
	ToEntities(models []*models.AllocationModel) ([]*project.Allocation, error)
}

type allocationMapperImpl struct{}

// NewAllocationMapper creates a new allocation mapper.
func NewAllocationMapper() AllocationMapper {
	return &allocationMapperImpl{}
}

func (m *allocationMapperImpl) ToEntity(model *models.AllocationModel) (*project.Allocation, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := project.ReconstructAllocation(model.ID, model.NID, model.ProjectID, model.GrantID, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct allocation entity: %w", err)
	}
	return entity, nil
}

func (m *allocationMapperImpl) ToModel(entity *project.Allocation) (*models.AllocationModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.AllocationModel{
		ID:        entity.ID(),
		NID:       entity.NID(),
		ProjectID: entity.ProjectID(),
		GrantID:   entity.GrantID(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}

func (m *allocationMapperImpl) ToEntities(modelList []*models.AllocationModel) ([]*project.Allocation, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.AllocationModel) uint { return model.ID })
}

// ParticipantMapper handles the conversion between participant entities
// and persistence models.
type ParticipantMapper interface {
	ToEntity(model *models.ParticipantModel) (*project.Participant, error)
	ToModel(entity *project.Participant) (*models.ParticipantModel, error)
	ToEntities(models []*models.ParticipantModel) ([]*project.Participant, error)
}

type participantMapperImpl struct{}

// NewParticipantMapper creates a new participant mapper.
func NewParticipantMapper() ParticipantMapper {
	return &participantMapperImpl{}
}

func (m *participantMapperImpl) ToEntity(model *models.ParticipantModel) (*project.Participant, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := project.ReconstructParticipant(
		model.ID,
		model.NID,
		model.ProjectID,
		model.PersonID,
		project.Role(model.Role),
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct participant entity: %w", err)
	}
	return entity, nil
}

func (m *participantMapperImpl) ToModel(entity *project.Participant) (*models.ParticipantModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.ParticipantModel{
		ID:        entity.ID(),
		NID:       entity.NID(),
		ProjectID: entity.ProjectID(),
		PersonID:  entity.PersonID(),
		Role:      entity.Role().String(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}

func (m *participantMapperImpl) ToEntities(modelList []*models.ParticipantModel) ([]*project.Participant, error) {
	return mapper.MapSlicePtrWithID(modelList, m.ToEntity, func(model *models.ParticipantModel) uint { return model.ID })
}
