package project

import (
	"fmt"
	"time"

	"floe/internal/shared/id"
)

// Participant links one project to one person with a role. A person can
// hold participant rows on many projects, but at most one person row
// exists per (name, organisation) triple.
type Participant struct {
	dbID      uint
	nid       string
	projectID uint
	personID  uint
	role      Role
	createdAt time.Time
}

// NewParticipant creates a participant linking a project and a person.
func NewParticipant(projectID, personID uint, role Role) (*Participant, error) {
	if projectID == 0 {
		return nil, fmt.Errorf("participant project ID is required")
	}
	if personID == 0 {
		return nil, fmt.Errorf("participant person ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	nid, err := id.New(id.PrefixParticipant)
	if err != nil {
		return nil, fmt.Errorf("failed to generate participant id: %w", err)
	}

	return &Participant{
		nid:       nid,
		projectID: projectID,
		personID:  personID,
		role:      role,
		createdAt: time.Now(),
	}, nil
}

// ReconstructParticipant rebuilds a participant from persistence.
func ReconstructParticipant(dbID uint, nid string, projectID, personID uint, role Role, createdAt time.Time) (*Participant, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("participant ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("participant NID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return &Participant{
		dbID:      dbID,
		nid:       nid,
		projectID: projectID,
		personID:  personID,
		role:      role,
		createdAt: createdAt,
	}, nil
}

func (p *Participant) ID() uint             { return p.dbID }
func (p *Participant) NID() string          { return p.nid }
func (p *Participant) ProjectID() uint      { return p.projectID }
func (p *Participant) PersonID() uint       { return p.personID }
func (p *Participant) Role() Role           { return p.role }
func (p *Participant) CreatedAt() time.Time { return p.createdAt }

// SetID sets the database ID after the initial insert.
func (p *Participant) SetID(dbID uint) error {
	if p.dbID != 0 {
		return fmt.Errorf("participant ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("participant ID cannot be zero")
	}
	p.dbID = dbID
	return nil
}
