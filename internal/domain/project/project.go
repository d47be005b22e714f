// Package project provides the Project aggregate together with the
// Allocation and Participant join entities.
package project

import (
	"fmt"
	"time"

	"floe/internal/shared/daterange"
	"floe/internal/shared/id"
)

// Project mirrors the descriptive fields of the grant funding it. The
// access duration shares the project duration's lower bound but is
// unbounded above.
type Project struct {
	dbID            uint
	nid             string
	title           string
	abstract        string
	publications    []string
	projectDuration daterange.DateRange
	accessDuration  daterange.DateRange
	grantReference  string
	leadProject     bool
	createdAt       time.Time
	updatedAt       time.Time
}

// Attributes carries the field set written by both reconciliation paths.
type Attributes struct {
	Title           string
	Abstract        string
	Publications    []string
	ProjectDuration daterange.DateRange
	GrantReference  string
	LeadProject     bool
}

// New creates a new project. The access duration is derived from the
// project duration by dropping the upper bound.
func New(attrs Attributes) (*Project, error) {
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	nid, err := id.New(id.PrefixProject)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project id: %w", err)
	}

	now := time.Now()
	p := &Project{
		nid:       nid,
		createdAt: now,
		updatedAt: now,
	}
	p.apply(attrs)
	return p, nil
}

// Reconstruct rebuilds a project from persistence. The stored access
// duration is trusted as written.
func Reconstruct(
	dbID uint,
	nid string,
	attrs Attributes,
	accessDuration daterange.DateRange,
	createdAt, updatedAt time.Time,
) (*Project, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("project NID is required")
	}
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	p := &Project{
		dbID:      dbID,
		nid:       nid,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	p.apply(attrs)
	p.accessDuration = accessDuration
	return p, nil
}

func validateAttributes(attrs Attributes) error {
	if attrs.Title == "" {
		return ErrTitleRequired
	}
	if attrs.GrantReference == "" {
		return ErrGrantReferenceRequired
	}
	if attrs.ProjectDuration.IsZero() {
		return ErrDurationRequired
	}
	return nil
}

func (p *Project) apply(attrs Attributes) {
	p.title = attrs.Title
	p.abstract = attrs.Abstract
	p.publications = append([]string(nil), attrs.Publications...)
	p.projectDuration = attrs.ProjectDuration
	p.accessDuration = attrs.ProjectDuration.OpenEnded()
	p.grantReference = attrs.GrantReference
	p.leadProject = attrs.LeadProject
}

func (p *Project) ID() uint                             { return p.dbID }
func (p *Project) NID() string                          { return p.nid }
func (p *Project) Title() string                        { return p.title }
func (p *Project) Abstract() string                     { return p.abstract }
func (p *Project) Publications() []string               { return append([]string(nil), p.publications...) }
func (p *Project) ProjectDuration() daterange.DateRange { return p.projectDuration }
func (p *Project) AccessDuration() daterange.DateRange  { return p.accessDuration }
func (p *Project) GrantReference() string               { return p.grantReference }
func (p *Project) LeadProject() bool                    { return p.leadProject }
func (p *Project) CreatedAt() time.Time                 { return p.createdAt }
func (p *Project) UpdatedAt() time.Time                 { return p.updatedAt }

// SetID sets the database ID after the initial insert.
func (p *Project) SetID(dbID uint) error {
	if p.dbID != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.dbID = dbID
	return nil
}

// Overwrite replaces the imported field set in place, re-deriving the
// access duration.
func (p *Project) Overwrite(attrs Attributes) error {
	if err := validateAttributes(attrs); err != nil {
		return err
	}
	p.apply(attrs)
	p.updatedAt = time.Now()
	return nil
}
