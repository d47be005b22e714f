package models

import (
	"time"

	"floe/internal/shared/constants"
)

// CategoryTermModel represents the database persistence model for
// category terms. The identifier is unique within its scheme.
type CategoryTermModel struct {
	ID         uint   `gorm:"primarykey"`
	NID        string `gorm:"not null;size:32;uniqueIndex:idx_category_term_nid"`
	SchemeID   uint   `gorm:"not null;uniqueIndex:idx_category_term_identity,priority:1"`
	Identifier string `gorm:"not null;size:255;uniqueIndex:idx_category_term_identity,priority:2;index:idx_category_term_identifier"`
	Name       string `gorm:"not null;size:512"`
	Path       string `gorm:"size:1024"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM.
func (CategoryTermModel) TableName() string {
	return constants.TableCategoryTerms
}
