package organisation

import "context"

// Repository defines persistence operations for organisations.
type Repository interface {
	// Create creates a new organisation
	Create(ctx context.Context, org *Organisation) error

	// Update updates an existing organisation
	Update(ctx context.Context, org *Organisation) error

	// GetByID retrieves an organisation by database ID; nil when absent
	GetByID(ctx context.Context, dbID uint) (*Organisation, error)

	// GetByNID retrieves an organisation by neutral identifier; nil when absent
	GetByNID(ctx context.Context, nid string) (*Organisation, error)

	// GetByRegistryID retrieves an organisation by registry identifier; nil when absent
	GetByRegistryID(ctx context.Context, registryID string) (*Organisation, error)

	// List retrieves organisations with pagination
	List(ctx context.Context, page, pageSize int) ([]*Organisation, int64, error)
}
