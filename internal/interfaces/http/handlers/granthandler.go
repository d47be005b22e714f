package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"floe/internal/application/catalog"
	"floe/internal/domain/grant"
	"floe/internal/interfaces/http/jsonapi"
	"floe/internal/shared/logger"
	"floe/internal/shared/utils"
)

const dateLayout = "2006-01-02"

type GrantHandler struct {
	queries *catalog.GrantQueries
	logger  logger.Interface
}

func NewGrantHandler(queries *catalog.GrantQueries) *GrantHandler {
	return &GrantHandler{
		queries: queries,
		logger:  logger.NewLogger(),
	}
}

type grantAttributes struct {
	Reference     string    `json:"reference"`
	Title         string    `json:"title"`
	Abstract      string    `json:"abstract,omitempty"`
	Status        string    `json:"status"`
	TotalFunds    string    `json:"total_funds"`
	Currency      string    `json:"currency"`
	DurationStart string    `json:"duration_start"`
	DurationEnd   *string   `json:"duration_end"`
	LeadProject   bool      `json:"lead_project"`
	Publications  []string  `json:"publications,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func grantResource(entity *grant.Grant, relationships map[string]jsonapi.Relationship) jsonapi.Resource {
	var end *string
	if e := entity.Duration().End(); e != nil {
		formatted := e.Format(dateLayout)
		end = &formatted
	}

	return jsonapi.Resource{
		Type: "grants",
		ID:   entity.NID(),
		Attributes: grantAttributes{
			Reference:     entity.Reference(),
			Title:         entity.Title(),
			Abstract:      entity.Abstract(),
			Status:        string(entity.Status()),
			TotalFunds:    entity.TotalFunds().String(),
			Currency:      entity.Currency(),
			DurationStart: entity.Duration().Start().Format(dateLayout),
			DurationEnd:   end,
			LeadProject:   entity.LeadProject(),
			Publications:  entity.Publications(),
			CreatedAt:     entity.CreatedAt(),
			UpdatedAt:     entity.UpdatedAt(),
		},
		Relationships: relationships,
	}
}

func (h *GrantHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entity, err := h.queries.GetByNID(ctx, c.Param("nid"))
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}

	relationships := map[string]jsonapi.Relationship{}
	funder, err := h.queries.Funder(ctx, entity.FunderID())
	if err != nil {
		jsonapi.ErrorFromErr(c, err)
		return
	}
	if funder != nil {
		relationships["funder"] = jsonapi.Relationship{
			Data: jsonapi.Identifier{Type: "organisations", ID: funder.NID()},
		}
	}

	jsonapi.Single(c, http.StatusOK, grantResource(entity, relationships))
}

func (h *GrantHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	entities, total, err := h.queries.List(c.Request.Context(), pagination)
	if err != nil {
		h.logger.Errorw("failed to list grants", "error", err)
		jsonapi.ErrorFromErr(c, err)
		return
	}

	resources := make([]jsonapi.Resource, 0, len(entities))
	for _, entity := range entities {
		resources = append(resources, grantResource(entity, nil))
	}

	jsonapi.List(c, resources, total, pagination)
}
