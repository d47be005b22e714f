// Package person provides the Person aggregate: researchers associated
// with projects through participant roles.
package person

import (
	"fmt"
	"time"

	"floe/internal/shared/id"
)

// Person belongs to at most one organisation. The reconciliation
// identity key is the (first name, last name, organisation) triple, not
// the external identifier, which may be absent.
type Person struct {
	dbID           uint
	nid            string
	firstName      string
	lastName       string
	externalID     string
	organisationID *uint
	createdAt      time.Time
	updatedAt      time.Time
}

// New creates a new person. externalID is an optional external
// identifier URI such as an ORCID.
func New(firstName, lastName, externalID string, organisationID *uint) (*Person, error) {
	if firstName == "" && lastName == "" {
		return nil, ErrNameRequired
	}

	nid, err := id.New(id.PrefixPerson)
	if err != nil {
		return nil, fmt.Errorf("failed to generate person id: %w", err)
	}

	now := time.Now()
	return &Person{
		nid:            nid,
		firstName:      firstName,
		lastName:       lastName,
		externalID:     externalID,
		organisationID: organisationID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a person from persistence.
func Reconstruct(
	dbID uint,
	nid string,
	firstName, lastName, externalID string,
	organisationID *uint,
	createdAt, updatedAt time.Time,
) (*Person, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("person ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("person NID is required")
	}

	return &Person{
		dbID:           dbID,
		nid:            nid,
		firstName:      firstName,
		lastName:       lastName,
		externalID:     externalID,
		organisationID: organisationID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (p *Person) ID() uint             { return p.dbID }
func (p *Person) NID() string          { return p.nid }
func (p *Person) FirstName() string    { return p.firstName }
func (p *Person) LastName() string     { return p.lastName }
func (p *Person) ExternalID() string   { return p.externalID }
func (p *Person) CreatedAt() time.Time { return p.createdAt }
func (p *Person) UpdatedAt() time.Time { return p.updatedAt }

// OrganisationID returns the employing organisation's database ID, or
// nil when unaffiliated.
func (p *Person) OrganisationID() *uint {
	return p.organisationID
}

// SetID sets the database ID after the initial insert.
func (p *Person) SetID(dbID uint) error {
	if p.dbID != 0 {
		return fmt.Errorf("person ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("person ID cannot be zero")
	}
	p.dbID = dbID
	return nil
}
