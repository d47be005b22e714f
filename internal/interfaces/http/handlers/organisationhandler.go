// Package handlers exposes the catalogue read surface as JSON:API
// resources.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"floe/internal/application/catalog"
	"floe/internal/domain/organisation"
	"floe/internal/interfaces/http/jsonapi"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

type OrganisationHandler struct {
	queries *catalog.OrganisationQueries
	logger  logger.Interface
}

func NewOrganisationHandler(queries *catalog.OrganisationQueries) *OrganisationHandler {
	return &OrganisationHandler{
		queries: queries,
		logger:  logger.NewLogger(),
	}
}

type organisationAttributes struct {
	Name       string    `json:"name"`
	RegistryID string    `json:"registry_id"`
	Acronym    string    `json:"acronym,omitempty"`
	Website    string    `json:"website,omitempty"`
	LogoURL    string    `json:"logo_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func organisationResource(entity *organisation.Organisation) jsonapi.Resource {
	return jsonapi.Resource{
		Type: "organisations",
		ID:   entity.NID(),
		Attributes: organisationAttributes{
			Name:       entity.Name(),
			RegistryID: entity.RegistryID(),
			Acronym:    entity.Acronym(),
			Website:    entity.Website(),
			LogoURL:    entity.LogoURL(),
			CreatedAt:  entity.CreatedAt(),
			UpdatedAt:  entity.UpdatedAt(),
		},
	}
}

func (h *OrganisationHandler) Get(c *gin.Context) {
	entity, err := h.queries.GetByNID(c.Request.Context(), c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	jsonapi.Single(c, http.StatusOK, organisationResource(entity))
}

func (h *OrganisationHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entities, total, err := h.queries.List(c.Request.Context(), pagination)
	if err != nil {
		h.logger.Errorw("failed to list organisations", "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, organisationResource(entity))
	}

	jsonapi.List(c, resources, total, pagination)
}
