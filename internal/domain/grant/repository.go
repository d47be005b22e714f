package grant

import "context"

// Repository defines persistence operations for grants.
type Repository interface {
	// Create creates a new grant
	Create(ctx context.Context, g *Grant) error

	// Update overwrites an existing grant row in place
	Update(ctx context.Context, g *Grant) error

	// GetByID retrieves a grant by database ID; nil when absent
	GetByID(ctx context.Context, dbID uint) (*Grant, error)

	// GetByNID retrieves a grant by neutral identifier; nil when absent
	GetByNID(ctx context.Context, nid string) (*Grant, error)

	// GetByReference retrieves a grant by external reference; nil when absent
	GetByReference(ctx context.Context, reference string) (*Grant, error)

	// ExistsByReference checks whether a grant with the reference exists
	ExistsByReference(ctx context.Context, reference string) (bool, error)

	// List retrieves grants with pagination
	List(ctx context.Context, page, pageSize int) ([]*Grant, int64, error)
}
