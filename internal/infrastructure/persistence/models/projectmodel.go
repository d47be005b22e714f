package models

import (
	"time"

	"gorm.io/datatypes"

	"floe/internal/shared/constants"
)

// ProjectModel represents the database persistence model for projects.
// The access duration has no end column: it is always unbounded above.
type ProjectModel struct {
	ID             uint           `gorm:"primarykey"`
	NID            string         `gorm:"not null;size:32;uniqueIndex:idx_project_nid"`
	Title          string         `gorm:"not null;size:512"`
	Abstract       string         `gorm:"type:text"`
	Publications   datatypes.JSON `gorm:"type:json"`
	DurationStart  time.Time      `gorm:"not null"`
	DurationEnd    *time.Time
	AccessStart    time.Time      `gorm:"not null"`
	GrantReference string         `gorm:"not null;size:64;index:idx_project_grant_reference"`
	LeadProject    bool           `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM.
func (ProjectModel) TableName() string {
	return constants.TableProjects
}
