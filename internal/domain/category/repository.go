package category

import "context"

// SchemeRepository defines persistence operations for category schemes.
type SchemeRepository interface {
	// Create creates a new scheme
	Create(ctx context.Context, s *Scheme) error

	// Update updates an existing scheme
	Update(ctx context.Context, s *Scheme) error

	// GetByID retrieves a scheme by database ID; nil when absent
	GetByID(ctx context.Context, dbID uint) (*Scheme, error)

	// GetByNID retrieves a scheme by neutral identifier; nil when absent
	GetByNID(ctx context.Context, nid string) (*Scheme, error)

	// GetByNamespace retrieves a scheme by namespace; nil when absent
	GetByNamespace(ctx context.Context, namespace string) (*Scheme, error)

	// List retrieves schemes with pagination
	List(ctx context.Context, page, pageSize int) ([]*Scheme, int64, error)
}

// TermRepository defines persistence operations for category terms.
type TermRepository interface {
	// Create creates a new term
	Create(ctx context.Context, t *Term) error

	// Update updates an existing term
	Update(ctx context.Context, t *Term) error

	// GetByID retrieves a term by database ID; nil when absent
	GetByID(ctx context.Context, dbID uint) (*Term, error)

	// GetByNID retrieves a term by neutral identifier; nil when absent
	GetByNID(ctx context.Context, nid string) (*Term, error)

	// GetByIdentifier retrieves a term by its scheme-local identifier.
	// Identifiers are unique within a scheme and in practice globally,
	// so the lookup is unqualified; nil when absent.
	GetByIdentifier(ctx context.Context, identifier string) (*Term, error)

	// ListBySchemeID retrieves all terms in a scheme
	ListBySchemeID(ctx context.Context, schemeID uint) ([]*Term, error)

	// List retrieves terms with pagination
	List(ctx context.Context, page, pageSize int) ([]*Term, int64, error)
}

// CategorisationRepository defines persistence operations for
// project/term links.
type CategorisationRepository interface {
	// Create creates a new categorisation
	Create(ctx context.Context, c *Categorisation) error

	// Delete removes a categorisation row
	Delete(ctx context.Context, dbID uint) error

	// ListByProjectID retrieves all categorisations for a project
	ListByProjectID(ctx context.Context, projectID uint) ([]*Categorisation, error)
}
