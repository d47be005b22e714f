package gtr

import (
	"context"
	"fmt"

	"floe/internal/shared/sanitize"
)

// Classification is one external research topic or subject entry.
type Classification struct {
	ID    string
	Label string
}

// ProjectAdapter wraps one fetched registry project together with its
// fund, people and publications, all resolved eagerly at construction.
// Sub-resources are fetched strictly sequentially, one round trip at a
// time.
type ProjectAdapter struct {
	uri             string
	title           string
	abstract        string
	status          string
	leadProject     bool
	identifiers     map[string][]string
	topics          []Classification
	subjects        []Classification
	fund            *FundAdapter
	investigators   []*PersonAdapter
	coInvestigators []*PersonAdapter
	publications    []*PublicationAdapter
}

// NewProjectAdapter fetches a project resource and every sub-resource
// the reconciliation needs. Title and status are required; the abstract
// is optional and sanitised to plain text. Exactly one FUND link is
// required.
func NewProjectAdapter(ctx context.Context, client *Client, tables *MappingTables, uri string) (*ProjectAdapter, error) {
	record, err := client.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	links, err := client.OrganizeLinks(record)
	if err != nil {
		return nil, fmt.Errorf("project resource %s: %w", uri, err)
	}

	title, ok := record.String("title")
	if !ok || title == "" {
		return nil, fmt.Errorf("project resource %s missing title", uri)
	}
	status, ok := record.String("status")
	if !ok || status == "" {
		return nil, fmt.Errorf("project resource %s missing status", uri)
	}

	abstract, _ := record.String("abstractText")
	abstract = sanitize.Text(abstract)

	leadProject := false
	if v, ok := record["leadProject"].(bool); ok {
		leadProject = v
	}

	fundURI, err := links.One("FUND")
	if err != nil {
		return nil, fmt.Errorf("project resource %s: %w", uri, err)
	}
	fund, err := NewFundAdapter(ctx, client, tables, fundURI)
	if err != nil {
		return nil, err
	}

	identifiers, err := groupIdentifiers(record)
	if err != nil {
		return nil, fmt.Errorf("project resource %s: %w", uri, err)
	}

	topics := collectClassifications(record, "researchTopics", "researchTopic")
	subjects := collectClassifications(record, "researchSubjects", "researchSubject")

	investigators, err := resolvePeople(ctx, client, tables, links["PI_PER"])
	if err != nil {
		return nil, err
	}
	coInvestigators, err := resolvePeople(ctx, client, tables, links["COI_PER"])
	if err != nil {
		return nil, err
	}

	var publications []*PublicationAdapter
	for _, pubURI := range links["PUBLICATION"] {
		publication, err := NewPublicationAdapter(ctx, client, pubURI)
		if err != nil {
			return nil, err
		}
		publications = append(publications, publication)
	}

	return &ProjectAdapter{
		uri:             uri,
		title:           title,
		abstract:        abstract,
		status:          status,
		leadProject:     leadProject,
		identifiers:     identifiers,
		topics:          topics,
		subjects:        subjects,
		fund:            fund,
		investigators:   investigators,
		coInvestigators: coInvestigators,
		publications:    publications,
	}, nil
}

func (a *ProjectAdapter) URI() string      { return a.uri }
func (a *ProjectAdapter) Title() string    { return a.title }
func (a *ProjectAdapter) Abstract() string { return a.abstract }
func (a *ProjectAdapter) Status() string   { return a.status }
func (a *ProjectAdapter) LeadProject() bool {
	return a.leadProject
}
func (a *ProjectAdapter) Fund() *FundAdapter        { return a.fund }
func (a *ProjectAdapter) Topics() []Classification  { return a.topics }
func (a *ProjectAdapter) Subjects() []Classification {
	return a.subjects
}
func (a *ProjectAdapter) Investigators() []*PersonAdapter   { return a.investigators }
func (a *ProjectAdapter) CoInvestigators() []*PersonAdapter { return a.coInvestigators }
func (a *ProjectAdapter) Publications() []*PublicationAdapter {
	return a.publications
}

// Identifiers returns the project identifier values grouped by type.
func (a *ProjectAdapter) Identifiers(identifierType string) []string {
	return a.identifiers[identifierType]
}

// DOIs returns the non-empty publication DOIs.
func (a *ProjectAdapter) DOIs() []string {
	var dois []string
	for _, publication := range a.publications {
		if publication.DOI() != "" {
			dois = append(dois, publication.DOI())
		}
	}
	return dois
}

// groupIdentifiers regroups the identifier list by identifier type.
func groupIdentifiers(record Resource) (map[string][]string, error) {
	grouped := make(map[string][]string)

	container, ok := record["identifiers"].(map[string]any)
	if !ok {
		return grouped, nil
	}
	entries, ok := container["identifier"].([]any)
	if !ok {
		return grouped, nil
	}

	for _, entry := range entries {
		identifier, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("identifier entry is not an object")
		}
		value, ok := identifier["value"].(string)
		if !ok || value == "" {
			return nil, fmt.Errorf("identifier entry missing value")
		}
		identifierType, ok := identifier["type"].(string)
		if !ok || identifierType == "" {
			return nil, fmt.Errorf("identifier entry missing type")
		}
		grouped[identifierType] = append(grouped[identifierType], value)
	}

	return grouped, nil
}

// collectClassifications extracts a research topic or subject list.
// An absent container is tolerated as empty.
func collectClassifications(record Resource, containerKey, entryKey string) []Classification {
	var classifications []Classification

	container, ok := record[containerKey].(map[string]any)
	if !ok {
		return classifications
	}
	entries, ok := container[entryKey].([]any)
	if !ok {
		return classifications
	}

	for _, entry := range entries {
		classification, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id, _ := classification["id"].(string)
		label, _ := classification["text"].(string)
		if id == "" {
			continue
		}
		classifications = append(classifications, Classification{ID: id, Label: label})
	}

	return classifications
}

// resolvePeople fetches a person adapter for each href, sequentially.
func resolvePeople(ctx context.Context, client *Client, tables *MappingTables, hrefs []string) ([]*PersonAdapter, error) {
	var people []*PersonAdapter
	for _, href := range hrefs {
		person, err := NewPersonAdapter(ctx, client, tables, href)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	return people, nil
}
