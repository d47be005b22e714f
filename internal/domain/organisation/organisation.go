// Package organisation provides the Organisation aggregate: research
// institutions, funders and employers referenced by the catalogue.
package organisation

import (
	"fmt"
	"time"

	"floe/internal/shared/id"
)

// Organisation is identified for reconciliation purposes by its registry
// identifier (a ROR-style URI). Organisations are loaded ahead of grant
// imports; the reconciliation engine reads them but never creates them.
type Organisation struct {
	dbID       uint
	nid        string
	registryID string
	name       string
	acronym    string
	website    string
	logoURL    string
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a new organisation. Name is mandatory, everything else is
// optional.
func New(name, registryID, acronym, website, logoURL string) (*Organisation, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	nid, err := id.New(id.PrefixOrganisation)
	if err != nil {
		return nil, fmt.Errorf("failed to generate organisation id: %w", err)
	}

	now := time.Now()
	return &Organisation{
		nid:        nid,
		registryID: registryID,
		name:       name,
		acronym:    acronym,
		website:    website,
		logoURL:    logoURL,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds an organisation from persistence.
func Reconstruct(
	dbID uint,
	nid string,
	registryID string,
	name string,
	acronym string,
	website string,
	logoURL string,
	createdAt, updatedAt time.Time,
) (*Organisation, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("organisation ID cannot be zero")
	}
	if nid == "" {
		return nil, fmt.Errorf("organisation NID is required")
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	return &Organisation{
		dbID:       dbID,
		nid:        nid,
		registryID: registryID,
		name:       name,
		acronym:    acronym,
		website:    website,
		logoURL:    logoURL,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (o *Organisation) ID() uint             { return o.dbID }
func (o *Organisation) NID() string          { return o.nid }
func (o *Organisation) RegistryID() string   { return o.registryID }
func (o *Organisation) Name() string         { return o.name }
func (o *Organisation) Acronym() string      { return o.acronym }
func (o *Organisation) Website() string      { return o.website }
func (o *Organisation) LogoURL() string      { return o.logoURL }
func (o *Organisation) CreatedAt() time.Time { return o.createdAt }
func (o *Organisation) UpdatedAt() time.Time { return o.updatedAt }

// SetID sets the database ID after the initial insert.
func (o *Organisation) SetID(dbID uint) error {
	if o.dbID != 0 {
		return fmt.Errorf("organisation ID is already set")
	}
	if dbID == 0 {
		return fmt.Errorf("organisation ID cannot be zero")
	}
	o.dbID = dbID
	return nil
}

// UpdateDetails overwrites the descriptive fields. The registry
// identifier is immutable once set: it is the reconciliation key.
func (o *Organisation) UpdateDetails(name, acronym, website, logoURL string) error {
	if name == "" {
		return ErrNameRequired
	}
	o.name = name
	o.acronym = acronym
	o.website = website
	o.logoURL = logoURL
	o.updatedAt = time.Now()
	return nil
}
