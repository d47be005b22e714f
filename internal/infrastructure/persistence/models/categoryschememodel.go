package models

import (
	"time"

	"gorm.io/datatypes"

	"floe/internal/shared/constants"
)

// CategorySchemeModel represents the database persistence model for
// category schemes.
type CategorySchemeModel struct {
	ID           uint           `gorm:"primarykey"`
	NID          string         `gorm:"not null;size:32;uniqueIndex:idx_category_scheme_nid"`
	Namespace    string         `gorm:"not null;size:255;uniqueIndex:idx_category_scheme_namespace"`
	Name         string         `gorm:"not null;size:255"`
	RootConcepts datatypes.JSON `gorm:"type:json"`
	Metadata     datatypes.JSON `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM.
func (CategorySchemeModel) TableName() string {
	return constants.TableCategorySchemes
}
