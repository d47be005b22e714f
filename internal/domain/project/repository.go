package project

import "context"

// Repository defines persistence operations for projects.
type Repository interface {
	// Create creates a new project
	Create(ctx context.Context, p *Project) error

	// Update overwrites an existing project row in place
	Update(ctx context.Context, p *Project) error

	// GetByID retrieves a project by database ID; nil when absent
	GetByID(ctx context.Context, dbID uint) (*Project, error)

	// GetByNID retrieves a project by neutral identifier; nil when absent
	GetByNID(ctx context.Context, nid string) (*Project, error)

	// List retrieves projects with pagination
	List(ctx context.Context, page, pageSize int) ([]*Project, int64, error)
}

// AllocationRepository defines persistence operations for allocations.
type AllocationRepository interface {
	// Create creates a new allocation
	Create(ctx context.Context, a *Allocation) error

	// GetByGrantID retrieves the allocation for a grant; nil when absent.
	// The update path relies on at most one allocation per grant.
	GetByGrantID(ctx context.Context, grantID uint) (*Allocation, error)

	// ListByProjectID retrieves all allocations for a project
	ListByProjectID(ctx context.Context, projectID uint) ([]*Allocation, error)
}

// ParticipantRepository defines persistence operations for participants.
type ParticipantRepository interface {
	// Create creates a new participant
	Create(ctx context.Context, p *Participant) error

	// GetByIdentity retrieves the participant row for one
	// project/person/role combination; nil when absent
	GetByIdentity(ctx context.Context, projectID, personID uint, role Role) (*Participant, error)

	// ListByProjectID retrieves all participants for a project
	ListByProjectID(ctx context.Context, projectID uint) ([]*Participant, error)

	// ListByPersonID retrieves all participants for a person
	ListByPersonID(ctx context.Context, personID uint) ([]*Participant, error)
}
