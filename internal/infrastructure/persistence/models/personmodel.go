package models

import (
	"time"

	"floe/internal/shared/constants"
)

// PersonModel represents the database persistence model for people.
// The composite index backs the (first name, last name, organisation)
// reconciliation lookup.
type PersonModel struct {
	ID             uint   `gorm:"primarykey"`
	NID            string `gorm:"not null;size:32;uniqueIndex:idx_person_nid"`
	FirstName      string `gorm:"size:100;index:idx_person_identity,priority:1"`
	LastName       string `gorm:"size:100;index:idx_person_identity,priority:2"`
	ExternalID     string `gorm:"size:255"`
	OrganisationID *uint  `gorm:"index:idx_person_identity,priority:3"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM.
func (PersonModel) TableName() string {
	return constants.TablePeople
}
