package catalog

import (
	"context"

	"floe/internal/domain/category"
	"floe/internal/domain/grant"
	"floe/internal/domain/person"
	"floe/internal/domain/project"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

// ParticipantDetail pairs a participant row with the person it
// references.
type ParticipantDetail struct {
	Participant *project.Participant
	Person      *person.Person
}

// AllocationDetail pairs an allocation row with the grant it
// references.
type AllocationDetail struct {
	Allocation *project.Allocation
	Grant      *grant.Grant
}

// CategorisationDetail pairs a categorisation row with the term it
// references.
type CategorisationDetail struct {
	Categorisation *category.Categorisation
	Term           *category.Term
}

// ProjectQueries serves read access to projects and their join rows.
type ProjectQueries struct {
	projectRepo        project.Repository
	allocationRepo     project.AllocationRepository
	participantRepo    project.ParticipantRepository
	categorisationRepo category.CategorisationRepository
	personRepo         person.Repository
	grantRepo          grant.Repository
	termRepo           category.TermRepository
	logger             logger.Interface
}

// NewProjectQueries creates project read queries.
func NewProjectQueries(
	projectRepo project.Repository,
	allocationRepo project.AllocationRepository,
	participantRepo project.ParticipantRepository,
	categorisationRepo category.CategorisationRepository,
	personRepo person.Repository,
	grantRepo grant.Repository,
	termRepo category.TermRepository,
	logger logger.Interface,
) *ProjectQueries {
	return &ProjectQueries{
		projectRepo:        projectRepo,
		allocationRepo:     allocationRepo,
		participantRepo:    participantRepo,
		categorisationRepo: categorisationRepo,
		personRepo:         personRepo,
		grantRepo:          grantRepo,
		termRepo:           termRepo,
		logger:             logger,
	}
}

// GetByNID retrieves a project by neutral identifier.
func (q *ProjectQueries) GetByNID(ctx context.Context, nid string) (*project.Project, error) {
	entity, err := q.projectRepo.GetByNID(ctx, nid)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("project not found", nid)
	}
	return entity, nil
}

// List retrieves a page of projects.
func (q *ProjectQueries) List(ctx context.Context, pagination utils.Pagination) ([]*project.Project, int64, error) {
	return q.projectRepo.List(ctx, pagination.Page, pagination.PageSize)
}

// Participants retrieves the participant rows of a project together
// with the referenced people. Rows whose person row is gone are
// skipped with a warning.
func (q *ProjectQueries) Participants(ctx context.Context, projectID uint) ([]ParticipantDetail, error) {
	rows, err := q.participantRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	details := make([]ParticipantDetail, 0, len(rows))
	for _, row := range rows {
		entity, err := q.personRepo.GetByID(ctx, row.PersonID())
		if err != nil {
			return nil, err
		}
		if entity == nil {
			q.logger.Warnw("participant references missing person", "participant_id", row.NID(), "person_id", row.PersonID())
			continue
		}
		details = append(details, ParticipantDetail{Participant: row, Person: entity})
	}
	return details, nil
}

// Allocations retrieves the allocation rows of a project together with
// the referenced grants.
func (q *ProjectQueries) Allocations(ctx context.Context, projectID uint) ([]AllocationDetail, error) {
	rows, err := q.allocationRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	details := make([]AllocationDetail, 0, len(rows))
	for _, row := range rows {
		entity, err := q.grantRepo.GetByID(ctx, row.GrantID())
		if err != nil {
			return nil, err
		}
		if entity == nil {
			q.logger.Warnw("allocation references missing grant", "allocation_id", row.NID(), "grant_id", row.GrantID())
			continue
		}
		details = append(details, AllocationDetail{Allocation: row, Grant: entity})
	}
	return details, nil
}

// Categorisations retrieves the category links of a project together
// with the referenced terms.
func (q *ProjectQueries) Categorisations(ctx context.Context, projectID uint) ([]CategorisationDetail, error) {
	rows, err := q.categorisationRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	details := make([]CategorisationDetail, 0, len(rows))
	for _, row := range rows {
		entity, err := q.termRepo.GetByID(ctx, row.TermID())
		if err != nil {
			return nil, err
		}
		if entity == nil {
			q.logger.Warnw("categorisation references missing term", "categorisation_id", row.NID(), "term_id", row.TermID())
			continue
		}
		details = append(details, CategorisationDetail{Categorisation: row, Term: entity})
	}
	return details, nil
}
