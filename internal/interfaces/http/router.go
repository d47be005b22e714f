// Package http wires the catalogue read surface: repositories, read
// queries, JSON:API handlers and middleware behind a gin engine.
package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"floe/internal/application/catalog"
	"floe/internal/infrastructure/config"
	"floe/internal/infrastructure/repository"
	"floe/internal/interfaces/http/handlers"
	"floe/internal/interfaces/http/middleware"
	"floe/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine              *gin.Engine
	cfg                 *config.Config
	logger              logger.Interface
	healthHandler       *handlers.HealthHandler
	organisationHandler *handlers.OrganisationHandler
	personHandler       *handlers.PersonHandler
	grantHandler        *handlers.GrantHandler
	projectHandler      *handlers.ProjectHandler
	categoryHandler     *handlers.CategoryHandler
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	organisationRepo := repository.NewOrganisationRepository(db, log)
	personRepo := repository.NewPersonRepository(db, log)
	grantRepo := repository.NewGrantRepository(db, log)
	projectRepo := repository.NewProjectRepository(db, log)
	allocationRepo := repository.NewAllocationRepository(db, log)
	participantRepo := repository.NewParticipantRepository(db, log)
	schemeRepo := repository.NewCategorySchemeRepository(db, log)
	termRepo := repository.NewCategoryTermRepository(db, log)
	categorisationRepo := repository.NewCategorisationRepository(db, log)

	organisationQueries := catalog.NewOrganisationQueries(organisationRepo, log)
	personQueries := catalog.NewPersonQueries(personRepo, participantRepo, projectRepo, organisationRepo, log)
	grantQueries := catalog.NewGrantQueries(grantRepo, organisationRepo, log)
	projectQueries := catalog.NewProjectQueries(
		projectRepo, allocationRepo, participantRepo, categorisationRepo,
		personRepo, grantRepo, termRepo, log,
	)
	categoryQueries := catalog.NewCategoryQueries(schemeRepo, termRepo, log)

	return &Router{
		engine:              engine,
		cfg:                 cfg,
		logger:              log,
		healthHandler:       handlers.NewHealthHandler(),
		organisationHandler: handlers.NewOrganisationHandler(organisationQueries),
		personHandler:       handlers.NewPersonHandler(personQueries),
		grantHandler:        handlers.NewGrantHandler(grantQueries),
		projectHandler:      handlers.NewProjectHandler(projectQueries),
		categoryHandler:     handlers.NewCategoryHandler(categoryQueries),
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.healthHandler.Check)

	organisations := r.engine.Group("/organisations")
	{
		organisations.GET("", r.organisationHandler.List)
		organisations.GET("/:nid", r.organisationHandler.Get)
	}

	people := r.engine.Group("/people")
	{
		people.GET("", r.personHandler.List)
		people.GET("/:nid", r.personHandler.Get)
		people.GET("/:nid/participations", r.personHandler.Participations)
	}

	grants := r.engine.Group("/grants")
	{
		grants.GET("", r.grantHandler.List)
		grants.GET("/:nid", r.grantHandler.Get)
	}

	projects := r.engine.Group("/projects")
	{
		projects.GET("", r.projectHandler.List)
		projects.GET("/:nid", r.projectHandler.Get)
		projects.GET("/:nid/participants", r.projectHandler.Participants)
		projects.GET("/:nid/allocations", r.projectHandler.Allocations)
		projects.GET("/:nid/categories", r.projectHandler.Categories)
	}

	schemes := r.engine.Group("/category-schemes")
	{
		schemes.GET("", r.categoryHandler.ListSchemes)
		schemes.GET("/:nid", r.categoryHandler.GetScheme)
		schemes.GET("/:nid/terms", r.categoryHandler.SchemeTerms)
	}

	terms := r.engine.Group("/category-terms")
	{
		terms.GET("", r.categoryHandler.ListTerms)
		terms.GET("/:nid", r.categoryHandler.GetTerm)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
