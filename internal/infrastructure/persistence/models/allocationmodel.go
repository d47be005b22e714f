package models

import (
	"time"

	"floe/internal/shared/constants"
)

// AllocationModel represents the database persistence model for
// project/grant allocations.
type AllocationModel struct {
	ID        uint   `gorm:"primarykey"`
	NID       string `gorm:"not null;size:32;uniqueIndex:idx_allocation_nid"`
	ProjectID uint   `gorm:"not null;index:idx_allocation_project_id"`
	GrantID   uint   `gorm:"not null;index:idx_allocation_grant_id"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM.
func (AllocationModel) TableName() string {
	return constants.TableAllocations
}
