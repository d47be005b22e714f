package catalog

import (
	"context"

	"floe/internal/domain/organisation"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

// OrganisationQueries serves read access to organisations.
type OrganisationQueries struct {
	organisationRepo organisation.Repository
	logger           logger.Interface
}

// NewOrganisationQueries creates organisation read queries.
func NewOrganisationQueries(organisationRepo organisation.Repository, logger logger.Interface) *OrganisationQueries {
	return &OrganisationQueries{organisationRepo: organisationRepo, logger: logger}
}

// GetByNID retrieves an organisation by neutral identifier.
func (q *OrganisationQueries) GetByNID(ctx context.Context, nid string) (*organisation.Organisation, error) {
	entity, err := q.organisationRepo.GetByNID(ctx, nid)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("organisation not found", nid)
	}
	return entity, nil
}

// List retrieves a page of organisations.
func (q *OrganisationQueries) List(ctx context.Context, pagination utils.Pagination) ([]*organisation.Organisation, int64, error) {
	return q.organisationRepo.List(ctx, pagination.Page, pagination.PageSize)
}
