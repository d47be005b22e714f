package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"floe/internal/application/catalog"
	"floe/internal/domain/person"
	"floe/internal/interfaces/http/jsonapi"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

type PersonHandler struct {
	queries *catalog.PersonQueries
	logger  logger.Interface
}

func NewPersonHandler(queries *catalog.PersonQueries) *PersonHandler {
	return &PersonHandler{
		queries: queries,
		logger:  logger.NewLogger(),
	}
}

type personAttributes struct {
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	ExternalID string    `json:"external_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type participationAttributes struct {
	Role         string `json:"role"`
	ProjectTitle string `json:"project_title"`
}

func personResource(entity *person.Person, relationships map[string]jsonapi.Relationship) jsonapi.Resource {
	return jsonapi.Resource{
		Type: "people",
		ID:   entity.NID(),
		Attributes: personAttributes{
			FirstName:  entity.FirstName(),
			LastName:   entity.LastName(),
			ExternalID: entity.ExternalID(),
			CreatedAt:  entity.CreatedAt(),
			UpdatedAt:  entity.UpdatedAt(),
		},
		Relationships: relationships,
	}
}

func (h *PersonHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	relationships := map[string]jsonapi.Relationship{}
	employer, err := h.queries.Employer(ctx, entity)
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}
	if employer != nil {
		relationships["organisation"] = jsonapi.Relationship{
			Data: jsonapi.Identifier{Type: "organisations", ID: employer.NID()},
		}
	}

	jsonapi.Single(c, http.StatusOK, personResource(entity, relationships))
}

func (h *PersonHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entities, total, err := h.queries.List(c.Request.Context(), pagination)
	if err != nil {
		h.logger.Errorw("failed to list people", "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, personResource(entity, nil))
	}

	jsonapi.List(c, resources, total, pagination)
}

// Participations lists the project memberships of one person.
func (h *PersonHandler) Participations(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	details, err := h.queries.Participations(ctx, entity.ID())
	if err != nil {
		h.logger.Errorw("failed to list participations", "person_id", entity.NID(), "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(details))
	for _, detail := range details {
		resources = append(resources, jsonapi.Resource{
			Type: "participants",
			ID:   detail.Participant.NID(),
			Attributes: participationAttributes{
				Role:         string(detail.Participant.Role()),
				ProjectTitle: detail.Project.Title(),
			},
			Relationships: map[string]jsonapi.Relationship{
				"project": {Data: jsonapi.Identifier{Type: "projects", ID: detail.Project.NID()}},
				"person":  {Data: jsonapi.Identifier{Type: "people", ID: entity.NID()}},
			},
		})
	}

	jsonapi.List(c, resources, int64(len(resources)), utils.ParsePagination(c))
}
