package project

import (
	"fmt"
	"time"

	"floe/internal/shared/id"
)

// Allocation links one project to the grant funding it. The schema
// allows many-to-many but the reconciliation engine assumes exactly one
// allocation per grant; see the project documentation for this known
// simplification.
type Allocation struct {
	dbID      uint
	nid       string
	projectID uint
	grantID   uint
	createdAt time.Time
}

// NewAllocation creates an allocation between a project and a grant.
func NewAllocation(projectID, grantID uint) (*Allocation, error) {
	if projectID == 0 {
		return nil, fmt.Errorf("allocation project ID is required")
	}
	if grantID == 0 {
		return nil, fmt.Errorf("allocation grant ID is required")
	}

	nid, err := id.New(id.PrefixAllocation)
	if err != nil {
		return nil, fmt.Errorf("failed to generate allocation id: %w", err)
	}

	return &Allocation{
		nid:       nid,
		projectID: projectID,
		grantID:   grantID,
		createdAt: time.Now(),
	}, nil
}

// ReconstructAllocation rebuilds an allocation from persistence.
func ReconstructAllocation(dbID uint, nid string, projectID, grantID uint, createdAt time.Time) (*Allocation, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("allocation ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("allocation NID is required")
	}
	return &Allocation{
		dbID:      dbID,
		nid:       nid,
		projectID: projectID,
		grantID:   grantID,
		createdAt: createdAt,
	}, nil
}

func (a *Allocation) ID() uint             { return a.dbID }
func (a *Allocation) NID() string          { return a.nid }
func (a *Allocation) ProjectID() uint      { return a.projectID }
func (a *Allocation) GrantID() uint        { return a.grantID }
func (a *Allocation) CreatedAt() time.Time { return a.createdAt }

// SetID sets the database ID after the initial insert.
func (a *Allocation) SetID(dbID uint) error {
	if a.dbID != 0 {
		return fmt.Errorf("allocation ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("allocation ID cannot be zero")
	}
	a.dbID = dbID
	return nil
}
