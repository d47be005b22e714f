package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"floe/internal/application/catalog"
	"floe/internal/domain/project"
	"floe/internal/interfaces/http/jsonapi"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

type ProjectHandler struct {
	queries *catalog.ProjectQueries
	logger  logger.Interface
}

func NewProjectHandler(queries *catalog.ProjectQueries) *ProjectHandler {
	return &ProjectHandler{
		queries: queries,
		logger:  logger.NewLogger(),
	}
}

type projectAttributes struct {
	Title          string    `json:"title"`
	Abstract       string    `json:"abstract,omitempty"`
	GrantReference string    `json:"grant_reference"`
	DurationStart  string    `json:"duration_start"`
	DurationEnd    *string   `json:"duration_end"`
	AccessStart    string    `json:"access_start"`
	LeadProject    bool      `json:"lead_project"`
	Publications   []string  `json:"publications,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type participantAttributes struct {
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type allocationAttributes struct {
	GrantReference string `json:"grant_reference"`
}

type categorisationAttributes struct {
	TermIdentifier string `json:"term_identifier"`
	TermName       string `json:"term_name"`
	TermPath       string `json:"term_path"`
}

func projectResource(entity *project.Project) jsonapi.Resource {
	var end *string
	if e := entity.ProjectDuration().End(); e != nil {
		formatted := e.Format(dateLayout)
		end = &formatted
	}

	return jsonapi.Resource{
		Type: "projects",
		ID:   entity.NID(),
		Attributes: projectAttributes{
			Title:          entity.Title(),
			Abstract:       entity.Abstract(),
			GrantReference: entity.GrantReference(),
			DurationStart:  entity.ProjectDuration().Start().Format(dateLayout),
			DurationEnd:    end,
			AccessStart:    entity.AccessDuration().Start().Format(dateLayout),
			LeadProject:    entity.LeadProject(),
			Publications:   entity.Publications(),
			CreatedAt:      entity.CreatedAt(),
			UpdatedAt:      entity.UpdatedAt(),
		},
	}
}

func (h *ProjectHandler) Get(c *gin.Context) {
	entity, err := h.queries.GetByNID(c.Request.Context(), c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	jsonapi.Single(c, http.StatusOK, projectResource(entity))
}

func (h *ProjectHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entities, total, err := h.queries.List(c.Request.Context(), pagination)
	if err != nil {
		h.logger.Errorw("failed to list projects", "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, projectResource(entity))
	}

	jsonapi.List(c, resources, total, pagination)
}

// Participants lists the people attached to one project with their
// roles.
func (h *ProjectHandler) Participants(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	details, err := h.queries.Participants(ctx, entity.ID())
	if err != nil {
		h.logger.Errorw("failed to list participants", "project_id", entity.NID(), "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(details))
	for _, detail := range details {
		resources = append(resources, jsonapi.Resource{
			Type: "participants",
			ID:   detail.Participant.NID(),
			Attributes: participantAttributes{
				Role:      string(detail.Participant.Role()),
				FirstName: detail.Person.FirstName(),
				LastName:  detail.Person.LastName(),
			},
			Relationships: map[string]jsonapi.Relationship{
				"person":  {Data: jsonapi.Identifier{Type: "people", ID: detail.Person.NID()}},
				"project": {Data: jsonapi.Identifier{Type: "projects", ID: entity.NID()}},
			},
		})
	}

	jsonapi.List(c, resources, int64(len(resources)), utils.ParsePagination(c))
}

// Allocations lists the grants funding one project.
func (h *ProjectHandler) Allocations(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	details, err := h.queries.Allocations(ctx, entity.ID())
	if err != nil {
		h.logger.Errorw("failed to list allocations", "project_id", entity.NID(), "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(details))
	for _, detail := range details {
		resources = append(resources, jsonapi.Resource{
			Type: "allocations",
			ID:   detail.Allocation.NID(),
			Attributes: allocationAttributes{
				GrantReference: detail.Grant.Reference(),
			},
			Relationships: map[string]jsonapi.Relationship{
				"grant":   {Data: jsonapi.Identifier{Type: "grants", ID: detail.Grant.NID()}},
				"project": {Data: jsonapi.Identifier{Type: "projects", ID: entity.NID()}},
			},
		})
	}

	jsonapi.List(c, resources, int64(len(resources)), utils.ParsePagination(c))
}

// Categories lists the category terms linked to one project.
func (h *ProjectHandler) Categories(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	details, err := h.queries.Categorisations(ctx, entity.ID())
	if err != nil {
		h.logger.Errorw("failed to list categorisations", "project_id", entity.NID(), "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(details))
	for _, detail := range details {
		resources = append(resources, jsonapi.Resource{
			Type: "categorisations",
			ID:   detail.Categorisation.NID(),
			Attributes: categorisationAttributes{
				TermIdentifier: detail.Term.Identifier(),
				TermName:       detail.Term.Name(),
				TermPath:       detail.Term.Path(),
			},
			Relationships: map[string]jsonapi.Relationship{
				"term":    {Data: jsonapi.Identifier{Type: "category-terms", ID: detail.Term.NID()}},
				"project": {Data: jsonapi.Identifier{Type: "projects", ID: entity.NID()}},
			},
		})
	}

	jsonapi.List(c, resources, int64(len(resources)), utils.ParsePagination(c))
}
