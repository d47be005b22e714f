package gtr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"floe/internal/shared/config"
	"floe/internal/shared/logger"
)

// acceptHeader pins the registry API version the adapters understand.
const acceptHeader = "application/vnd.rcuk.gtr.json-v7"

// Resource is one decoded registry record.
type Resource map[string]any

// String returns the named field as a string.
func (r Resource) String(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

// Number returns the named field as a float64.
func (r Resource) Number(key string) (float64, bool) {
	v, ok := r[key].(float64)
	return v, ok
}

// Links groups resource link hrefs by relation type.
type Links map[string][]string

// One returns the single href for a relation type. Zero or more than
// one link with that relation is a structural error.
func (l Links) One(rel string) (string, error) {
	hrefs := l[rel]
	if len(hrefs) != 1 {
		return "", fmt.Errorf("expected exactly one %q link, got %d", rel, len(hrefs))
	}
	return hrefs[0], nil
}

// Client fetches records from the Gateway to Research registry.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	internalHost string
	publicHost   string
	logger       logger.Interface
}

// NewClient creates a new registry client
func NewClient(cfg *config.GtRConfig, log logger.Interface) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		internalHost: cfg.InternalHost,
		publicHost:   cfg.PublicHost,
		logger:       log.With("component", "gtr.client"),
	}
}

// Fetch issues a GET against the given registry URI and decodes the
// JSON body. Any non-2xx response or decode failure propagates; there
// is no retry.
func (c *Client) Fetch(ctx context.Context, uri string) (Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", uri, err)
	}
	req.Header.Set("Accept", acceptHeader)

	c.logger.Debugw("fetching registry resource", "uri", uri)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, uri)
	}

	var record Resource
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", uri, err)
	}

	return record, nil
}

// OrganizeLinks regroups a record's flat {href, rel} link list into a
// mapping from relation type to hrefs, rewriting the internal registry
// hostname to its public equivalent.
func (c *Client) OrganizeLinks(record Resource) (Links, error) {
	container, ok := record["links"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record has no links container")
	}
	entries, ok := container["link"].([]any)
	if !ok {
		return nil, fmt.Errorf("links container has no link array")
	}

	links := make(Links)
	for _, entry := range entries {
		link, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("link entry is not an object")
		}
		rel, ok := link["rel"].(string)
		if !ok || rel == "" {
			return nil, fmt.Errorf("link entry missing rel")
		}
		href, ok := link["href"].(string)
		if !ok || href == "" {
			return nil, fmt.Errorf("link entry missing href")
		}
		if c.internalHost != "" && c.publicHost != "" {
			href = strings.Replace(href, c.internalHost, c.publicHost, 1)
		}
		links[rel] = append(links[rel], href)
	}

	return links, nil
}

// SearchProject queries the registry for a project by funder reference
// and returns the href of the single match. Zero matches yields
// ErrProjectNotFound; more than one yields ErrAmbiguousReference.
func (c *Client) SearchProject(ctx context.Context, reference string) (string, error) {
	searchURL := fmt.Sprintf("%s/projects?q=%s", c.baseURL, url.QueryEscape(reference))

	record, err := c.Fetch(ctx, searchURL)
	if err != nil {
		return "", fmt.Errorf("failed to search for reference %s: %w", reference, err)
	}

	entries, ok := record["project"].([]any)
	if !ok || len(entries) == 0 {
		return "", ErrProjectNotFound
	}
	if len(entries) > 1 {
		return "", ErrAmbiguousReference
	}

	project, ok := entries[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("search result entry is not an object")
	}
	href, ok := project["href"].(string)
	if !ok || href == "" {
		return "", fmt.Errorf("search result entry missing href")
	}

	if c.internalHost != "" && c.publicHost != "" {
		href = strings.Replace(href, c.internalHost, c.publicHost, 1)
	}
	return href, nil
}
