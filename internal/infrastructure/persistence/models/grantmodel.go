package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"floe/internal/shared/constants"
)

// GrantModel represents the database persistence model for grants.
type GrantModel struct {
	ID            uint            `gorm:"primarykey"`
	NID           string          `gorm:"not null;size:32;uniqueIndex:idx_grant_nid"`
	Reference     string          `gorm:"not null;size:64;uniqueIndex:idx_grant_reference"`
	Title         string          `gorm:"not null;size:512"`
	Abstract      string          `gorm:"type:text"`
	Publications  datatypes.JSON  `gorm:"type:json"`
	DurationStart time.Time       `gorm:"not null"`
	DurationEnd   *time.Time
	Status        string          `gorm:"not null;size:20;index:idx_grant_status"`
	TotalFunds    decimal.Decimal `gorm:"type:decimal(14,2)"`
	Currency      string          `gorm:"not null;size:3"`
	FunderID      uint            `gorm:"not null;index:idx_grant_funder_id"`
	LeadProject   bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM.
func (GrantModel) TableName() string {
	return constants.TableGrants
}
