package gtr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureServer serves canned registry records by path.
type fixtureServer struct {
	server *httptest.Server
	routes map[string]map[string]any
}

func newFixtureServer(t *testing.T) *fixtureServer {
	f := &fixtureServer{routes: make(map[string]map[string]any)}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record, ok := f.routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(record)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fixtureServer) url(path string) string {
	return f.server.URL + path
}

func (f *fixtureServer) client() *Client {
	return newTestClient(f.server.URL)
}

func linksOf(entries ...map[string]any) map[string]any {
	converted := make([]any, 0, len(entries))
	for _, entry := range entries {
		converted = append(converted, entry)
	}
	return map[string]any{"link": converted}
}

func rel(relType, href string) map[string]any {
	return map[string]any{"rel": relType, "href": href}
}

func (f *fixtureServer) loadFundGraph() {
	f.routes["/organisations/O1"] = map[string]any{"name": "Funding Council"}
	f.routes["/funds/F1"] = map[string]any{
		"start": float64(1325376000000),
		"end":   float64(1420070400000),
		"valuePounds": map[string]any{
			"amount":       float64(50000),
			"currencyCode": "GBP",
		},
		"links": linksOf(rel("FUNDER", f.url("/organisations/O1"))),
	}
}

func (f *fixtureServer) tables() *MappingTables {
	return NewMappingTables(
		map[string]string{
			f.url("/organisations/O1"): "GB-1",
			f.url("/organisations/O2"): "GB-2",
		},
		map[string]string{
			f.url("/persons/PER2"): "https://orcid.org/0000-0002-0000-0000",
		},
		nil,
		nil,
	)
}

func TestOrganisationAdapter(t *testing.T) {
	f := newFixtureServer(t)
	f.routes["/organisations/O1"] = map[string]any{"name": "Funding Council"}
	f.routes["/organisations/NONAME"] = map[string]any{}

	t.Run("resolves name, role and registry identifier", func(t *testing.T) {
		adapter, err := NewOrganisationAdapter(context.Background(), f.client(), f.tables(), f.url("/organisations/O1"), RoleFunder)
		require.NoError(t, err)

		assert.Equal(t, "Funding Council", adapter.Name())
		assert.Equal(t, RoleFunder, adapter.Role())
		assert.Equal(t, "GB-1", adapter.RegistryID())
	})

	t.Run("missing name is structural", func(t *testing.T) {
		_, err := NewOrganisationAdapter(context.Background(), f.client(), f.tables(), f.url("/organisations/NONAME"), RoleEmployer)
		require.Error(t, err)
		assert.False(t, IsUnmapped(err))
	})

	t.Run("mapping miss is an unmapped failure", func(t *testing.T) {
		f.routes["/organisations/UNKNOWN"] = map[string]any{"name": "Somewhere"}

		_, err := NewOrganisationAdapter(context.Background(), f.client(), f.tables(), f.url("/organisations/UNKNOWN"), RoleFunder)
		require.Error(t, err)
		assert.True(t, IsUnmapped(err))

		var orgErr *UnmappedOrganisationError
		require.ErrorAs(t, err, &orgErr)
		assert.Equal(t, f.url("/organisations/UNKNOWN"), orgErr.ResourceURI)
	})
}

func TestFundAdapter(t *testing.T) {
	f := newFixtureServer(t)
	f.loadFundGraph()

	t.Run("resolves funder, period and value", func(t *testing.T) {
		adapter, err := NewFundAdapter(context.Background(), f.client(), f.tables(), f.url("/funds/F1"))
		require.NoError(t, err)

		assert.Equal(t, "GB-1", adapter.Funder().RegistryID())
		assert.Equal(t, RoleFunder, adapter.Funder().Role())
		assert.True(t, adapter.Amount().Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, "GBP", adapter.Currency())
		assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), adapter.Duration().Start())
		require.NotNil(t, adapter.Duration().End())
		assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), *adapter.Duration().End())
	})

	t.Run("missing valuePounds is structural", func(t *testing.T) {
		f.routes["/funds/NOVALUE"] = map[string]any{
			"start": float64(1325376000000),
			"end":   float64(1420070400000),
			"links": linksOf(rel("FUNDER", f.url("/organisations/O1"))),
		}

		_, err := NewFundAdapter(context.Background(), f.client(), f.tables(), f.url("/funds/NOVALUE"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "valuePounds")
	})

	t.Run("unknown currency fails", func(t *testing.T) {
		f.routes["/funds/EUR"] = map[string]any{
			"start": float64(1325376000000),
			"end":   float64(1420070400000),
			"valuePounds": map[string]any{
				"amount":       float64(100),
				"currencyCode": "EUR",
			},
			"links": linksOf(rel("FUNDER", f.url("/organisations/O1"))),
		}

		_, err := NewFundAdapter(context.Background(), f.client(), f.tables(), f.url("/funds/EUR"))
		require.Error(t, err)
	})

	t.Run("two funder links are structural", func(t *testing.T) {
		f.routes["/funds/TWOFUNDERS"] = map[string]any{
			"start": float64(1325376000000),
			"end":   float64(1420070400000),
			"valuePounds": map[string]any{
				"amount":       float64(100),
				"currencyCode": "GBP",
			},
			"links": linksOf(
				rel("FUNDER", f.url("/organisations/O1")),
				rel("FUNDER", f.url("/organisations/O2")),
			),
		}

		_, err := NewFundAdapter(context.Background(), f.client(), f.tables(), f.url("/funds/TWOFUNDERS"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FUNDER")
	})
}

func TestPersonAdapter(t *testing.T) {
	f := newFixtureServer(t)
	f.routes["/organisations/O2"] = map[string]any{"name": "University"}
	f.routes["/persons/PER1"] = map[string]any{
		"firstName": "Rachel",
		"surname":   "Stone",
		"orcidId":   "https://orcid.org/0000-0001-5000-0007",
		"links":     linksOf(rel("EMPLOYED", f.url("/organisations/O2"))),
	}
	f.routes["/persons/PER2"] = map[string]any{
		"firstName": "Tom",
		"surname":   "Field",
		"links":     linksOf(rel("EMPLOYED", f.url("/organisations/O2"))),
	}
	f.routes["/persons/PER3"] = map[string]any{
		"links": linksOf(rel("EMPLOYED", f.url("/organisations/O2"))),
	}

	t.Run("carries orcid from the record", func(t *testing.T) {
		adapter, err := NewPersonAdapter(context.Background(), f.client(), f.tables(), f.url("/persons/PER1"))
		require.NoError(t, err)

		assert.Equal(t, "Rachel", adapter.FirstName())
		assert.Equal(t, "Stone", adapter.LastName())
		assert.Equal(t, "https://orcid.org/0000-0001-5000-0007", adapter.ExternalID())
		assert.Equal(t, "GB-2", adapter.Employer().RegistryID())
		assert.Equal(t, RoleEmployer, adapter.Employer().Role())
	})

	t.Run("falls back to the people mapping table", func(t *testing.T) {
		adapter, err := NewPersonAdapter(context.Background(), f.client(), f.tables(), f.url("/persons/PER2"))
		require.NoError(t, err)

		assert.Equal(t, "https://orcid.org/0000-0002-0000-0000", adapter.ExternalID())
	})

	t.Run("names and identifier may be absent", func(t *testing.T) {
		adapter, err := NewPersonAdapter(context.Background(), f.client(), f.tables(), f.url("/persons/PER3"))
		require.NoError(t, err)

		assert.Empty(t, adapter.FirstName())
		assert.Empty(t, adapter.ExternalID())
	})

	t.Run("missing employer link is structural", func(t *testing.T) {
		f.routes["/persons/NOEMP"] = map[string]any{
			"firstName": "Eve",
			"surname":   "Lone",
			"links":     linksOf(),
		}

		_, err := NewPersonAdapter(context.Background(), f.client(), f.tables(), f.url("/persons/NOEMP"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMPLOYED")
	})
}

func TestProjectAdapter(t *testing.T) {
	f := newFixtureServer(t)
	f.loadFundGraph()
	f.routes["/organisations/O2"] = map[string]any{"name": "University"}
	f.routes["/persons/PER1"] = map[string]any{
		"firstName": "Rachel",
		"surname":   "Stone",
		"links":     linksOf(rel("EMPLOYED", f.url("/organisations/O2"))),
	}
	f.routes["/publications/PUB1"] = map[string]any{"doi": "10.1000/xyz"}
	f.routes["/publications/PUB2"] = map[string]any{}
	f.routes["/projects/P1"] = map[string]any{
		"title":        "Arctic soil carbon dynamics",
		"status":       "Active",
		"abstractText": "<b>Bold</b> claims about permafrost.",
		"leadProject":  true,
		"identifiers": map[string]any{
			"identifier": []any{
				map[string]any{"value": "NE/K011820/1", "type": "RCUK"},
				map[string]any{"value": "K011820", "type": "OTHER"},
			},
		},
		"researchTopics": map[string]any{
			"researchTopic": []any{
				map[string]any{"id": "T1", "text": "Sea Ice"},
			},
		},
		"links": linksOf(
			rel("FUND", f.url("/funds/F1")),
			rel("PI_PER", f.url("/persons/PER1")),
			rel("PUBLICATION", f.url("/publications/PUB1")),
			rel("PUBLICATION", f.url("/publications/PUB2")),
		),
	}

	t.Run("resolves the full sub-resource graph", func(t *testing.T) {
		adapter, err := NewProjectAdapter(context.Background(), f.client(), f.tables(), f.url("/projects/P1"))
		require.NoError(t, err)

		assert.Equal(t, "Arctic soil carbon dynamics", adapter.Title())
		assert.Equal(t, "Bold claims about permafrost.", adapter.Abstract(), "markup is stripped")
		assert.Equal(t, "Active", adapter.Status())
		assert.True(t, adapter.LeadProject())

		assert.Equal(t, []string{"NE/K011820/1"}, adapter.Identifiers("RCUK"))
		assert.Equal(t, []string{"K011820"}, adapter.Identifiers("OTHER"))
		assert.Empty(t, adapter.Identifiers("DOI"))

		require.Len(t, adapter.Topics(), 1)
		assert.Equal(t, Classification{ID: "T1", Label: "Sea Ice"}, adapter.Topics()[0])
		assert.Empty(t, adapter.Subjects())

		require.Len(t, adapter.Investigators(), 1)
		assert.Empty(t, adapter.CoInvestigators())

		assert.Equal(t, []string{"10.1000/xyz"}, adapter.DOIs(), "empty DOIs are dropped")
	})

	t.Run("missing title is structural", func(t *testing.T) {
		f.routes["/projects/NOTITLE"] = map[string]any{
			"status": "Active",
			"links":  linksOf(rel("FUND", f.url("/funds/F1"))),
		}

		_, err := NewProjectAdapter(context.Background(), f.client(), f.tables(), f.url("/projects/NOTITLE"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing title")
	})

	t.Run("missing fund link is structural", func(t *testing.T) {
		f.routes["/projects/NOFUND"] = map[string]any{
			"title":  "No fund",
			"status": "Active",
			"links":  linksOf(rel("PI_PER", f.url("/persons/PER1"))),
		}

		_, err := NewProjectAdapter(context.Background(), f.client(), f.tables(), f.url("/projects/NOFUND"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FUND")
	})
}
