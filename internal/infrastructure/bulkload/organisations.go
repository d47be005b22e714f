// Package bulkload reads the reference entity files that must be in
// place before grant reconciliation runs: organisations and category
// taxonomies.
package bulkload

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"floe/internal/domain/organisation"
	"floe/internal/shared/logger"
)

// organisationRecord is one entry in the organisation bulk file.
type organisationRecord struct {
	Name       string `json:"name"`
	RegistryID string `json:"registry_id"`
	Acronym    string `json:"acronym"`
	Website    string `json:"website"`
	LogoURL    string `json:"logo_url"`
}

// OrganisationLoader upserts organisations from a JSON bulk file,
// keyed by registry identifier.
type OrganisationLoader struct {
	organisationRepo organisation.Repository
	logger           logger.Interface
}

// NewOrganisationLoader creates a new organisation loader.
func NewOrganisationLoader(organisationRepo organisation.Repository, logger logger.Interface) *OrganisationLoader {
	return &OrganisationLoader{
		organisationRepo: organisationRepo,
		logger:           logger.With("component", "bulkload.organisations"),
	}
}

// Load reads the file and upserts every record. It returns the number
// of records applied.
func (l *OrganisationLoader) Load(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read organisation file %s: %w", path, err)
	}

	var records []organisationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("failed to parse organisation file %s: %w", path, err)
	}

	applied := 0
	for i, record := range records {
		if record.RegistryID == "" {
			return applied, fmt.Errorf("organisation entry %d in %s has no registry_id", i, path)
		}

		existing, err := l.organisationRepo.GetByRegistryID(ctx, record.RegistryID)
		if err != nil {
			return applied, err
		}

		if existing != nil {
			if err := existing.UpdateDetails(record.Name, record.Acronym, record.Website, record.LogoURL); err != nil {
				return applied, fmt.Errorf("invalid organisation entry %d in %s: %w", i, path, err)
			}
			if err := l.organisationRepo.Update(ctx, existing); err != nil {
				return applied, err
			}
		} else {
			entity, err := organisation.New(record.Name, record.RegistryID, record.Acronym, record.Website, record.LogoURL)
			if err != nil {
				return applied, fmt.Errorf("invalid organisation entry %d in %s: %w", i, path, err)
			}
			if err := l.organisationRepo.Create(ctx, entity); err != nil {
				return applied, err
			}
		}
		applied++
	}

	l.logger.Infow("organisations loaded", "path", path, "count", applied)
	return applied, nil
}
