package gtr

import (
	"context"
	"fmt"
)

// OrganisationRole tags the relationship through which an organisation
// resource was reached.
type OrganisationRole string

const (
	RoleFunder   OrganisationRole = "funder"
	RoleEmployer OrganisationRole = "employer"
)

// OrganisationAdapter wraps one fetched registry organisation. The
// funder and employer variants differ only by role tag.
type OrganisationAdapter struct {
	uri        string
	role       OrganisationRole
	name       string
	registryID string
}

// NewOrganisationAdapter fetches an organisation resource, validates
// that it carries a name and resolves its local registry identifier via
// the mapping tables. A mapping miss yields UnmappedOrganisationError.
func NewOrganisationAdapter(ctx context.Context, client *Client, tables *MappingTables, uri string, role OrganisationRole) (*OrganisationAdapter, error) {
	record, err := client.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	name, ok := record.String("name")
	if !ok || name == "" {
		return nil, fmt.Errorf("organisation resource %s missing name", uri)
	}

	registryID, ok := tables.Organisation(uri)
	if !ok {
		return nil, &UnmappedOrganisationError{ResourceURI: uri}
	}

	return &OrganisationAdapter{
		uri:        uri,
		role:       role,
		name:       name,
		registryID: registryID,
	}, nil
}

func (a *OrganisationAdapter) URI() string            { return a.uri }
func (a *OrganisationAdapter) Role() OrganisationRole { return a.role }
func (a *OrganisationAdapter) Name() string           { return a.name }
func (a *OrganisationAdapter) RegistryID() string     { return a.registryID }
