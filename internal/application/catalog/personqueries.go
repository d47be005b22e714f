package catalog

import (
	"context"

	"floe/internal/domain/organisation"
	"floe/internal/domain/person"
	"floe/internal/domain/project"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

// ParticipationDetail pairs a participant row with the project it
// belongs to.
type ParticipationDetail struct {
	Participant *project.Participant
	Project     *project.Project
}

// PersonQueries serves read access to people.
type PersonQueries struct {
	personRepo       person.Repository
	participantRepo  project.ParticipantRepository
	projectRepo      project.Repository
	organisationRepo organisation.Repository
	logger           logger.Interface
}

// NewPersonQueries creates person read queries.
func NewPersonQueries(
	personRepo person.Repository,
	participantRepo project.ParticipantRepository,
	projectRepo project.Repository,
	organisationRepo organisation.Repository,
	logger logger.Interface,
) *PersonQueries {
	return &PersonQueries{
		personRepo:       personRepo,
		participantRepo:  participantRepo,
		projectRepo:      projectRepo,
		organisationRepo: organisationRepo,
		logger:           logger,
	}
}

// GetByNID retrieves a person by neutral identifier.
func (q *PersonQueries) GetByNID(ctx context.Context, nid string) (*person.Person, error) {
	entity, err := q.personRepo.GetByNID(ctx, nid)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("person not found", nid)
	}
	return entity, nil
}

// List retrieves a page of people.
func (q *PersonQueries) List(ctx context.Context, pagination utils.Pagination) ([]*person.Person, int64, error) {
	return q.personRepo.List(ctx, pagination.Page, pagination.PageSize)
}

// Employer retrieves the employing organisation of a person; nil when
// the person has no recorded employer.
func (q *PersonQueries) Employer(ctx context.Context, entity *person.Person) (*organisation.Organisation, error) {
	orgID := entity.OrganisationID()
	if orgID == nil {
		return nil, nil
	}
	return q.organisationRepo.GetByID(ctx, *orgID)
}

// Participations retrieves the participant rows referencing a person
// together with the projects they belong to. Rows whose project row is
// gone are skipped with a warning.
func (q *PersonQueries) Participations(ctx context.Context, personID uint) ([]ParticipationDetail, error) {
	rows, err := q.participantRepo.ListByPersonID(ctx, personID)
	if err != nil {
		return nil, err
	}

	details := make([]ParticipationDetail, 0, len(rows))
	for _, row := range rows {
		entity, err := q.projectRepo.GetByID(ctx, row.ProjectID())
		if err != nil {
			return nil, err
		}
		if entity == nil {
			q.logger.Warnw("participant references missing project", "participant_id", row.NID(), "project_id", row.ProjectID())
			continue
		}
		details = append(details, ParticipationDetail{Participant: row, Project: entity})
	}
	return details, nil
}
