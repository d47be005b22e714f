package gtr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floe/internal/shared/config"
	"floe/internal/shared/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.GtRConfig{
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		InternalHost: "internal-gtr.example.org",
		PublicHost:   "gtr.example.org",
	}, logger.NewLogger())
}

func TestClient_Fetch(t *testing.T) {
	t.Run("sends versioned accept header", func(t *testing.T) {
		var gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAccept = r.Header.Get("Accept")
			json.NewEncoder(w).Encode(map[string]any{"title": "x"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		record, err := client.Fetch(context.Background(), server.URL+"/projects/P1")
		require.NoError(t, err)

		assert.Equal(t, "application/vnd.rcuk.gtr.json-v7", gotAccept)
		title, ok := record.String("title")
		assert.True(t, ok)
		assert.Equal(t, "x", title)
	})

	t.Run("non-2xx status fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Fetch(context.Background(), server.URL+"/projects/P1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 502")
	})

	t.Run("malformed body fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Fetch(context.Background(), server.URL+"/projects/P1")
		require.Error(t, err)
	})
}

func TestClient_OrganizeLinks(t *testing.T) {
	client := newTestClient("https://gtr.example.org")

	t.Run("groups by relation and rewrites internal host", func(t *testing.T) {
		record := Resource{
			"links": map[string]any{
				"link": []any{
					map[string]any{"rel": "FUND", "href": "https://internal-gtr.example.org/funds/F1"},
					map[string]any{"rel": "PI_PER", "href": "https://gtr.example.org/persons/P1"},
					map[string]any{"rel": "PI_PER", "href": "https://gtr.example.org/persons/P2"},
				},
			},
		}

		links, err := client.OrganizeLinks(record)
		require.NoError(t, err)

		fund, err := links.One("FUND")
		require.NoError(t, err)
		assert.Equal(t, "https://gtr.example.org/funds/F1", fund)
		assert.Len(t, links["PI_PER"], 2)
	})

	t.Run("missing links container fails", func(t *testing.T) {
		_, err := client.OrganizeLinks(Resource{})
		require.Error(t, err)
	})

	t.Run("link entry without rel fails", func(t *testing.T) {
		record := Resource{
			"links": map[string]any{
				"link": []any{
					map[string]any{"href": "https://gtr.example.org/funds/F1"},
				},
			},
		}
		_, err := client.OrganizeLinks(record)
		require.Error(t, err)
	})

	t.Run("One rejects zero and multiple links", func(t *testing.T) {
		links := Links{"PI_PER": {"a", "b"}}
		_, err := links.One("FUND")
		require.Error(t, err)
		_, err = links.One("PI_PER")
		require.Error(t, err)
	})
}

func TestClient_SearchProject(t *testing.T) {
	search := func(t *testing.T, entries []any) (string, error) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/projects", r.URL.Path)
			assert.Equal(t, "NE/K011820/1", r.URL.Query().Get("q"))
			json.NewEncoder(w).Encode(map[string]any{"project": entries})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		return client.SearchProject(context.Background(), "NE/K011820/1")
	}

	t.Run("single match returns href", func(t *testing.T) {
		href, err := search(t, []any{
			map[string]any{"href": "https://internal-gtr.example.org/projects/P1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "https://gtr.example.org/projects/P1", href)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := search(t, []any{})
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("multiple matches", func(t *testing.T) {
		_, err := search(t, []any{
			map[string]any{"href": "https://gtr.example.org/projects/P1"},
			map[string]any{"href": "https://gtr.example.org/projects/P2"},
		})
		assert.ErrorIs(t, err, ErrAmbiguousReference)
	})
}
