package category

import (
	"fmt"
	"time"

	"floe/internal/shared/id"
)

// Categorisation links one project to one category term, unique on the
// (project, term) pair.
type Categorisation struct {
	dbID      uint
	nid       string
	projectID uint
	termID    uint
	createdAt time.Time
}

// NewCategorisation creates a categorisation link.
func NewCategorisation(projectID, termID uint) (*Categorisation, error) {
	if projectID == 0 {
		return nil, fmt.Errorf("categorisation project ID is required")
	}
	if termID == 0 {
		return nil, fmt.Errorf("categorisation term ID is required")
	}

	nid, err := id.New(id.PrefixCategorisation)
	if err != nil {
		return nil, fmt.Errorf("failed to generate categorisation id: %w", err)
	}

	return &Categorisation{
		nid:       nid,
		projectID: projectID,
		termID:    termID,
		createdAt: time.Now(),
	}, nil
}

// ReconstructCategorisation rebuilds a categorisation from persistence.
func ReconstructCategorisation(dbID uint, nid string, projectID, termID uint, createdAt time.Time) (*Categorisation, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("categorisation ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("categorisation NID is required")
	}
	return &Categorisation{
		dbID:      dbID,
		nid:       nid,
		projectID: projectID,
		termID:    termID,
		createdAt: createdAt,
	}, nil
}

func (c *Categorisation) ID() uint             { return c.dbID }
func (c *Categorisation) NID() string          { return c.nid }
func (c *Categorisation) ProjectID() uint      { return c.projectID }
func (c *Categorisation) TermID() uint         { return c.termID }
func (c *Categorisation) CreatedAt() time.Time { return c.createdAt }

// SetID sets the database ID after the initial insert.
func (c *Categorisation) SetID(dbID uint) error {
	if c.dbID != 0 {
		return fmt.Errorf("categorisation ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("categorisation ID cannot be zero")
	}
	c.dbID = dbID
	return nil
}
