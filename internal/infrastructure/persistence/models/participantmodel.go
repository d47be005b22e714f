package models

import (
	"time"

	"floe/internal/shared/constants"
)

// ParticipantModel represents the database persistence model for
// project/person participants.
type ParticipantModel struct {
	ID        uint   `gorm:"primarykey"`
	NID       string `gorm:"not null;size:32;uniqueIndex:idx_participant_nid"`
	ProjectID uint   `gorm:"not null;index:idx_participant_project_id"`
	PersonID  uint   `gorm:"not null;index:idx_participant_person_id"`
	Role      string `gorm:"not null;size:40"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM.
func (ParticipantModel) TableName() string {
	return constants.TableParticipants
}
