package catalog

import (
	"context"

	"floe/internal/domain/grant"
	"floe/internal/domain/organisation"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

// GrantQueries serves read access to grants for the resource layer.
type GrantQueries struct {
	grantRepo        grant.Repository
	organisationRepo organisation.Repository
	logger           logger.Interface
}

// NewGrantQueries creates grant read queries.
func NewGrantQueries(grantRepo grant.Repository, organisationRepo organisation.Repository, logger logger.Interface) *GrantQueries {
	return &GrantQueries{grantRepo: grantRepo, organisationRepo: organisationRepo, logger: logger}
}

// GetByNID retrieves a grant by neutral identifier.
func (q *GrantQueries) GetByNID(ctx context.Context, nid string) (*grant.Grant, error) {
	entity, err := q.grantRepo.GetByNID(ctx, nid)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("grant not found", nid)
	}
	return entity, nil
}

// List retrieves a page of grants.
func (q *GrantQueries) List(ctx context.Context, pagination utils.Pagination) ([]*grant.Grant, int64, error) {
	return q.grantRepo.List(ctx, pagination.Page, pagination.PageSize)
}

// Funder retrieves the funding organisation of a grant; nil when the
// referenced row is gone.
func (q *GrantQueries) Funder(ctx context.Context, funderID uint) (*organisation.Organisation, error) {
	return q.organisationRepo.GetByID(ctx, funderID)
}
