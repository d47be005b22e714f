// Package constants defines shared constant values used across layers.
package constants

// Environments
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Pagination
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Database table names
const (
	TableOrganisations   = "organisations"
	TablePeople          = "people"
	TableGrants          = "grants"
	TableProjects        = "projects"
	TableAllocations     = "allocations"
	TableParticipants    = "participants"
	TableCategorySchemes = "category_schemes"
	TableCategoryTerms   = "category_terms"
	TableCategorisations = "categorisations"
)
