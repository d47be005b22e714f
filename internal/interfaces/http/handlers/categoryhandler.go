package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"floe/internal/application/catalog"
	"floe/internal/domain/category"
	"floe/internal/interfaces/http/jsonapi"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

type CategoryHandler struct {
	queries *catalog.CategoryQueries
	logger  logger.Interface
}

func NewCategoryHandler(queries *catalog.CategoryQueries) *CategoryHandler {
	return &CategoryHandler{
		queries: queries,
		logger:  logger.NewLogger(),
	}
}

type schemeAttributes struct {
	Namespace    string         `json:"namespace"`
	Name         string         `json:"name"`
	RootConcepts []string       `json:"root_concepts,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type termAttributes struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func schemeResource(entity *category.Scheme) jsonapi.Resource {
	return jsonapi.Resource{
		Type: "category-schemes",
		ID:   entity.NID(),
		Attributes: schemeAttributes{
			Namespace:    entity.Namespace(),
			Name:         entity.Name(),
			RootConcepts: entity.RootConcepts(),
			Metadata:     entity.Metadata(),
			CreatedAt:    entity.CreatedAt(),
			UpdatedAt:    entity.UpdatedAt(),
		},
	}
}

func termResource(entity *category.Term, relationships map[string]jsonapi.Relationship) jsonapi.Resource {
	return jsonapi.Resource{
		Type: "category-terms",
		ID:   entity.NID(),
		Attributes: termAttributes{
			Identifier: entity.Identifier(),
			Name:       entity.Name(),
			Path:       entity.Path(),
			CreatedAt:  entity.CreatedAt(),
			UpdatedAt:  entity.UpdatedAt(),
		},
		Relationships: relationships,
	}
}

func (h *CategoryHandler) GetScheme(c *gin.Context) {
	entity, err := h.queries.GetSchemeByNID(c.Request.Context(), c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	jsonapi.Single(c, http.StatusOK, schemeResource(entity))
}

func (h *CategoryHandler) ListSchemes(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entities, total, err := h.queries.ListSchemes(c.Request.Context(), pagination)
	if err != nil {
		h.logger.Errorw("failed to list category schemes", "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, schemeResource(entity))
	}

	jsonapi.List(c, resources, total, pagination)
}

// SchemeTerms lists every term of one scheme.
func (h *CategoryHandler) SchemeTerms(c *gin.Context) {
	ctx := c.Request.Context()

	scheme, err := h.queries.GetSchemeByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	entities, err := h.queries.SchemeTerms(ctx, scheme.ID())
	if err != nil {
		h.logger.Errorw("failed to list scheme terms", "scheme_id", scheme.NID(), "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	relationship := map[string]jsonapi.Relationship{
		"scheme": {Data: jsonapi.Identifier{Type: "category-schemes", ID: scheme.NID()}},
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, termResource(entity, relationship))
	}

	jsonapi.List(c, resources, int64(len(resources)), utils.ParsePagination(c))
}

func (h *CategoryHandler) GetTerm(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetTermByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	relationships := map[string]jsonapi.Relationship{}
	scheme, err := h.queries.SchemeByID(ctx, entity.SchemeID())
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}
	if scheme != nil {
		relationships["scheme"] = jsonapi.Relationship{
			Data: jsonapi.Identifier{Type: "category-schemes", ID: scheme.NID()},
		}
	}

	jsonapi.Single(c, http.StatusOK, termResource(entity, relationships))
}

func (h *CategoryHandler) ListTerms(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entities, total, err := h.queries.ListTerms(c.Request.Context(), pagination)
	if err != nil {
		h.logger.Errorw("failed to list category terms", "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, termResource(entity, nil))
	}

	jsonapi.List(c, resources, total, pagination)
}
