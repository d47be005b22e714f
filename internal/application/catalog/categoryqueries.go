package catalog

import (
	"context"

	"floe/internal/domain/category"
	"floe/internal/shared/errors"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

// CategoryQueries serves read access to category schemes and terms.
type CategoryQueries struct {
	schemeRepo category.SchemeRepository
	termRepo   category.TermRepository
	logger     logger.Interface
}

// NewCategoryQueries creates category read queries.
func NewCategoryQueries(schemeRepo category.SchemeRepository, termRepo category.TermRepository, logger logger.Interface) *CategoryQueries {
	return &CategoryQueries{schemeRepo: schemeRepo, termRepo: termRepo, logger: logger}
}

// GetSchemeByNID retrieves a scheme by neutral identifier.
func (q *CategoryQueries) GetSchemeByNID(ctx context.Context, nid string) (*category.Scheme, error) {
	entity, err := q.schemeRepo.GetByNID(ctx, nid)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("category scheme not found", nid)
	}
	return entity, nil
}

// ListSchemes retrieves a page of schemes.
func (q *CategoryQueries) ListSchemes(ctx context.Context, pagination utils.Pagination) ([]*category.Scheme, int64, error) {
	return q.schemeRepo.List(ctx, pagination.Page, pagination.PageSize)
}

// GetTermByNID retrieves a term by neutral identifier.
func (q *CategoryQueries) GetTermByNID(ctx context.Context, nid string) (*category.Term, error) {
	entity, err := q.termRepo.GetByNID(ctx, nid)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("category term not found", nid)
	}
	return entity, nil
}

// ListTerms retrieves a page of terms.
func (q *CategoryQueries) ListTerms(ctx context.Context, pagination utils.Pagination) ([]*category.Term, int64, error) {
	return q.termRepo.List(ctx, pagination.Page, pagination.PageSize)
}

// SchemeByID retrieves a scheme by database ID; nil when absent.
func (q *CategoryQueries) SchemeByID(ctx context.Context, dbID uint) (*category.Scheme, error) {
	return q.schemeRepo.GetByID(ctx, dbID)
}

// SchemeTerms retrieves every term in one scheme.
func (q *CategoryQueries) SchemeTerms(ctx context.Context, schemeID uint) ([]*category.Term, error) {
	return q.termRepo.ListBySchemeID(ctx, schemeID)
}
