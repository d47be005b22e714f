package models

import (
	"time"

	"floe/internal/shared/constants"
)

// CategorisationModel represents the database persistence model for
// project/term categorisation links, unique on (project, term).
type CategorisationModel struct {
	ID        uint   `gorm:"primarykey"`
	NID       string `gorm:"not null;size:32;uniqueIndex:idx_categorisation_nid"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_categorisation_link,priority:1"`
	TermID    uint   `gorm:"not null;uniqueIndex:idx_categorisation_link,priority:2"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM.
func (CategorisationModel) TableName() string {
	return constants.TableCategorisations
}
