package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floe/internal/application/catalog"
	"floe/internal/domain/organisation"
	"floe/internal/interfaces/http/jsonapi"
	"floe/internal/shared/logger"
)

// stubOrganisationRepo serves a fixed set of organisations keyed by NID.
type stubOrganisationRepo struct {
	byNID map[string]*organisation.Organisation
	err   error
}

func (s *stubOrganisationRepo) Create(ctx context.Context, org *organisation.Organisation) error {
	return nil
}

func (s *stubOrganisationRepo) Update(ctx context.Context, org *organisation.Organisation) error {
	return nil
}

func (s *stubOrganisationRepo) GetByID(ctx context.Context, id uint) (*organisation.Organisation, error) {
	return nil, nil
}

func (s *stubOrganisationRepo) GetByNID(ctx context.Context, nid string) (*organisation.Organisation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byNID[nid], nil
}

func (s *stubOrganisationRepo) GetByRegistryID(ctx context.Context, registryID string) (*organisation.Organisation, error) {
	return nil, nil
}

func (s *stubOrganisationRepo) List(ctx context.Context, page, pageSize int) ([]*organisation.Organisation, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	var all []*organisation.Organisation
	for _, org := range s.byNID {
		all = append(all, org)
	}
	return all, int64(len(all)), nil
}

func organisationFixture(t *testing.T) *organisation.Organisation {
	t.Helper()
	entity, err := organisation.Reconstruct(
		1, "org_01hxyz", "GB-GOR-NE",
		"Natural Environment Research Council", "NERC", "https://nerc.ukri.org", "",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return entity
}

func serveOrganisations(repo organisation.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrganisationHandler(catalog.NewOrganisationQueries(repo, logger.NewLogger()))
	engine := gin.New()
	engine.GET("/organisations", handler.List)
	engine.GET("/organisations/:nid", handler.Get)
	return engine
}

func TestOrganisationHandler_Get(t *testing.T) {
	entity := organisationFixture(t)
	engine := serveOrganisations(&stubOrganisationRepo{
		byNID: map[string]*organisation.Organisation{entity.NID(): entity},
	})

	t.Run("renders the resource object", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/organisations/"+entity.NID(), nil)
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, jsonapi.ContentType, recorder.Header().Get("Content-Type"))

		var document struct {
			Data struct {
				Type       string         `json:"type"`
				ID         string         `json:"id"`
				Attributes map[string]any `json:"attributes"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &document))
		assert.Equal(t, "organisations", document.Data.Type)
		assert.Equal(t, entity.NID(), document.Data.ID)
		assert.Equal(t, "Natural Environment Research Council", document.Data.Attributes["name"])
		assert.Equal(t, "GB-GOR-NE", document.Data.Attributes["registry_id"])
	})

	t.Run("unknown NID yields a 404 error document", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/organisations/org_unknown", nil)
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var document jsonapi.ErrorDocument
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &document))
		require.Len(t, document.Errors, 1)
		assert.Equal(t, "404", document.Errors[0].Status)
		assert.Contains(t, document.Errors[0].Title, "not found")
	})
}

func TestOrganisationHandler_List(t *testing.T) {
	t.Run("renders resources with pagination meta", func(t *testing.T) {
		entity := organisationFixture(t)
		engine := serveOrganisations(&stubOrganisationRepo{
			byNID: map[string]*organisation.Organisation{entity.NID(): entity},
		})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/organisations?page[number]=1&page[size]=10", nil)
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var document struct {
			Data []jsonapi.Resource `json:"data"`
			Meta map[string]any     `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &document))
		require.Len(t, document.Data, 1)
		assert.Equal(t, float64(1), document.Meta["total"])
		assert.Equal(t, float64(1), document.Meta["page"])
		assert.Equal(t, float64(10), document.Meta["page_size"])
	})

	t.Run("storage failure becomes an opaque 500", func(t *testing.T) {
		engine := serveOrganisations(&stubOrganisationRepo{err: fmt.Errorf("connection refused")})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/organisations", nil)
		engine.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "connection refused")
	})
}
