package migration

import (
	"floe/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OrganisationModel{},
		&models.PersonModel{},
		&models.GrantModel{},
		&models.ProjectModel{},
		&models.AllocationModel{},
		&models.ParticipantModel{},
		&models.CategorySchemeModel{},
		&models.CategoryTermModel{},
		&models.CategorisationModel{},
	}
}
