package gtr

import (
	"context"
	"fmt"
)

// PersonAdapter wraps one fetched registry person and the employer
// organisation reached through its single EMPLOYED link. Names and the
// external identifier are optional and pass through as-is; only the
// employer and its organisation mapping are mandatory.
type PersonAdapter struct {
	uri        string
	firstName  string
	lastName   string
	externalID string
	employer   *OrganisationAdapter
}

// NewPersonAdapter fetches a person resource and its employer.
func NewPersonAdapter(ctx context.Context, client *Client, tables *MappingTables, uri string) (*PersonAdapter, error) {
	record, err := client.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	links, err := client.OrganizeLinks(record)
	if err != nil {
		return nil, fmt.Errorf("person resource %s: %w", uri, err)
	}

	employerURI, err := links.One("EMPLOYED")
	if err != nil {
		return nil, fmt.Errorf("person resource %s: %w", uri, err)
	}
	employer, err := NewOrganisationAdapter(ctx, client, tables, employerURI, RoleEmployer)
	if err != nil {
		return nil, err
	}

	firstName, _ := record.String("firstName")
	lastName, _ := record.String("surname")

	externalID, _ := record.String("orcidId")
	if externalID == "" {
		// Fall back to the people mapping table for persons the
		// registry never tagged with an ORCID.
		externalID, _ = tables.Person(uri)
	}

	return &PersonAdapter{
		uri:        uri,
		firstName:  firstName,
		lastName:   lastName,
		externalID: externalID,
		employer:   employer,
	}, nil
}

func (a *PersonAdapter) URI() string                    { return a.uri }
func (a *PersonAdapter) FirstName() string              { return a.firstName }
func (a *PersonAdapter) LastName() string               { return a.lastName }
func (a *PersonAdapter) ExternalID() string             { return a.externalID }
func (a *PersonAdapter) Employer() *OrganisationAdapter { return a.employer }
