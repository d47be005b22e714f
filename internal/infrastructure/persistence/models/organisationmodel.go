package models

import (
	"time"

	"floe/internal/shared/constants"
)

// OrganisationModel represents the database persistence model for organisations.
type OrganisationModel struct {
	ID         uint   `gorm:"primarykey"`
	NID        string `gorm:"not null;size:32;uniqueIndex:idx_organisation_nid"`
	RegistryID string `gorm:"size:255;uniqueIndex:idx_organisation_registry_id"`
	Name       string `gorm:"not null;size:255;index:idx_organisation_name"`
	Acronym    string `gorm:"size:50"`
	Website    string `gorm:"size:255"`
	LogoURL    string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM.
func (OrganisationModel) TableName() string {
	return constants.TableOrganisations
}
