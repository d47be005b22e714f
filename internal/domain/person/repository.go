package person

import "context"

// Repository defines persistence operations for people.
type Repository interface {
	// Create creates a new person
	Create(ctx context.Context, p *Person) error

	// GetByID retrieves a person by database ID; nil when absent
	GetByID(ctx context.Context, dbID uint) (*Person, error)

	// GetByNID retrieves a person by neutral identifier; nil when absent
	GetByNID(ctx context.Context, nid string) (*Person, error)

	// GetByNameAndOrganisation retrieves a person by the reconciliation
	// identity triple; nil when absent
	GetByNameAndOrganisation(ctx context.Context, firstName, lastName string, organisationID uint) (*Person, error)

	// List retrieves people with pagination
	List(ctx context.Context, page, pageSize int) ([]*Person, int64, error)
}
