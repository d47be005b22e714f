package importer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"floe/internal/domain/category"
	"floe/internal/domain/grant"
	"floe/internal/domain/organisation"
	"floe/internal/domain/project"
	"floe/internal/infrastructure/gtr"
	"floe/internal/infrastructure/migration"
	"floe/internal/infrastructure/persistence/models"
	"floe/internal/infrastructure/repository"
	sharedconfig "floe/internal/shared/config"
	"floe/internal/shared/db"
	"floe/internal/shared/logger"
)

const testReference = "NE/K011820/1"

// epoch millis for 2012-01-01T00:00:00Z and 2015-01-01T00:00:00Z
const (
	fundStartMillis = int64(1325376000000)
	fundEndMillis   = int64(1420070400000)
)

// fakeRegistry serves canned registry records by path. Routes are
// mutable so tests can change the feed between import runs.
type fakeRegistry struct {
	server *httptest.Server
	routes map[string]map[string]any
}

func newFakeRegistry(t *testing.T) *fakeRegistry {
	registry := &fakeRegistry{routes: make(map[string]map[string]any)}
	registry.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		record, ok := registry.routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(record))
	}))
	t.Cleanup(registry.server.Close)
	return registry
}

func (f *fakeRegistry) url(path string) string {
	return f.server.URL + path
}

func link(rel, href string) map[string]any {
	return map[string]any{"rel": rel, "href": href}
}

// loadScenario installs the standard single-grant feed: one project
// with one fund, one funder, one principal investigator and one topic
// plus one subject classification.
func (f *fakeRegistry) loadScenario() {
	f.routes["/projects"] = map[string]any{
		"project": []any{
			map[string]any{"href": f.url("/projects/P1")},
		},
	}
	f.routes["/projects/P1"] = map[string]any{
		"title":        "Arctic soil carbon dynamics",
		"status":       "Active",
		"abstractText": "<p>Carbon release from thawing permafrost.</p>",
		"leadProject":  true,
		"identifiers": map[string]any{
			"identifier": []any{
				map[string]any{"value": testReference, "type": "RCUK"},
			},
		},
		"researchTopics": map[string]any{
			"researchTopic": []any{
				map[string]any{"id": "TOPIC-SEAICE", "text": "Sea Ice"},
			},
		},
		"researchSubjects": map[string]any{
			"researchSubject": []any{
				map[string]any{"id": "SUBJ-CLIM", "text": "Climate"},
			},
		},
		"links": map[string]any{
			"link": []any{
				link("FUND", f.url("/funds/F1")),
				link("PI_PER", f.url("/persons/PI1")),
			},
		},
	}
	f.routes["/funds/F1"] = map[string]any{
		"start": fundStartMillis,
		"end":   fundEndMillis,
		"valuePounds": map[string]any{
			"amount":       float64(50000),
			"currencyCode": "GBP",
		},
		"links": map[string]any{
			"link": []any{
				link("FUNDER", f.url("/organisations/FUNDER")),
			},
		},
	}
	f.routes["/organisations/FUNDER"] = map[string]any{
		"name": "Natural Environment Research Council",
	}
	f.routes["/organisations/EMPLOYER"] = map[string]any{
		"name": "University of Leeds",
	}
	f.routes["/persons/PI1"] = map[string]any{
		"firstName": "Rachel",
		"surname":   "Stone",
		"orcidId":   "https://orcid.org/0000-0001-5000-0007",
		"links": map[string]any{
			"link": []any{
				link("EMPLOYED", f.url("/organisations/EMPLOYER")),
			},
		},
	}
}

type harness struct {
	db                 *gorm.DB
	registry           *fakeRegistry
	useCase            *ImportGrantUseCase
	grantRepo          grant.Repository
	projectRepo        project.Repository
	allocationRepo     project.AllocationRepository
	participantRepo    project.ParticipantRepository
	organisationRepo   organisation.Repository
	schemeRepo         category.SchemeRepository
	termRepo           category.TermRepository
	categorisationRepo category.CategorisationRepository
	unmappedLog        string
}

func setupHarness(t *testing.T, topics, subjects map[string]string) *harness {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(migration.AutoMigrateModels()...))

	registry := newFakeRegistry(t)
	registry.loadScenario()

	log := logger.NewLogger()

	grantRepo := repository.NewGrantRepository(conn, log)
	projectRepo := repository.NewProjectRepository(conn, log)
	allocationRepo := repository.NewAllocationRepository(conn, log)
	participantRepo := repository.NewParticipantRepository(conn, log)
	personRepo := repository.NewPersonRepository(conn, log)
	organisationRepo := repository.NewOrganisationRepository(conn, log)
	schemeRepo := repository.NewCategorySchemeRepository(conn, log)
	termRepo := repository.NewCategoryTermRepository(conn, log)
	categorisationRepo := repository.NewCategorisationRepository(conn, log)

	// Reference organisations are bulk-loaded before any import runs.
	funder, err := organisation.New("Natural Environment Research Council", "GB-GOR-NE", "NERC", "", "")
	require.NoError(t, err)
	require.NoError(t, organisationRepo.Create(context.Background(), funder))
	employer, err := organisation.New("University of Leeds", "GB-UNIV-LEEDS", "", "", "")
	require.NoError(t, err)
	require.NoError(t, organisationRepo.Create(context.Background(), employer))

	// Curated taxonomy the mapped identifiers resolve against.
	scheme, err := category.NewScheme("curated", "Curated keywords", []string{"curated"}, nil)
	require.NoError(t, err)
	require.NoError(t, schemeRepo.Create(context.Background(), scheme))
	for identifier, name := range map[string]string{
		"curated.seaice":  "Sea ice",
		"curated.climate": "Climate indicators",
	} {
		term, err := category.NewTerm(scheme.ID(), identifier, name, identifier)
		require.NoError(t, err)
		require.NoError(t, termRepo.Create(context.Background(), term))
	}

	if topics == nil {
		topics = map[string]string{"TOPIC-SEAICE": "curated.seaice"}
	}
	if subjects == nil {
		subjects = map[string]string{"SUBJ-CLIM": "curated.climate"}
	}
	tables := gtr.NewMappingTables(
		map[string]string{
			registry.url("/organisations/FUNDER"):   "GB-GOR-NE",
			registry.url("/organisations/EMPLOYER"): "GB-UNIV-LEEDS",
		},
		nil,
		topics,
		subjects,
	)

	client := gtr.NewClient(&sharedconfig.GtRConfig{
		BaseURL: registry.server.URL,
		Timeout: 5 * time.Second,
	}, log)

	reconciler := NewReconciler(
		grantRepo, projectRepo, allocationRepo, participantRepo,
		personRepo, organisationRepo,
		schemeRepo, termRepo, categorisationRepo,
		tables, log,
	)

	unmappedLog := filepath.Join(t.TempDir(), "unmapped.log")
	useCase := NewImportGrantUseCase(client, reconciler, grantRepo, db.NewTransactionManager(conn), unmappedLog, log)

	return &harness{
		db:                 conn,
		registry:           registry,
		useCase:            useCase,
		grantRepo:          grantRepo,
		projectRepo:        projectRepo,
		allocationRepo:     allocationRepo,
		participantRepo:    participantRepo,
		organisationRepo:   organisationRepo,
		schemeRepo:         schemeRepo,
		termRepo:           termRepo,
		categorisationRepo: categorisationRepo,
		unmappedLog:        unmappedLog,
	}
}

func (h *harness) countRows(t *testing.T, model any) int64 {
	var count int64
	require.NoError(t, h.db.Model(model).Count(&count).Error)
	return count
}

func (h *harness) projectOf(t *testing.T, reference string) *project.Project {
	ctx := context.Background()
	g, err := h.grantRepo.GetByReference(ctx, reference)
	require.NoError(t, err)
	require.NotNil(t, g)
	allocation, err := h.allocationRepo.GetByGrantID(ctx, g.ID())
	require.NoError(t, err)
	require.NotNil(t, allocation)
	p, err := h.projectRepo.GetByID(ctx, allocation.ProjectID())
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func TestImportGrant_Create(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	result, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.False(t, result.Updated)

	g, err := h.grantRepo.GetByReference(ctx, testReference)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "Arctic soil carbon dynamics", g.Title())
	assert.Equal(t, "Carbon release from thawing permafrost.", g.Abstract())
	assert.Equal(t, grant.StatusActive, g.Status())
	assert.True(t, g.TotalFunds().Equal(decimal.NewFromInt(50000)), "total funds = %s", g.TotalFunds())
	assert.Equal(t, "GBP", g.Currency())
	assert.True(t, g.LeadProject())
	assert.Equal(t, time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), g.Duration().Start())
	require.NotNil(t, g.Duration().End())
	assert.Equal(t, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC), *g.Duration().End())

	funder, err := h.organisationRepo.GetByID(ctx, g.FunderID())
	require.NoError(t, err)
	require.NotNil(t, funder)
	assert.Equal(t, "GB-GOR-NE", funder.RegistryID())

	p := h.projectOf(t, testReference)
	assert.Equal(t, g.Title(), p.Title())
	assert.Equal(t, testReference, p.GrantReference())
	assert.Nil(t, p.AccessDuration().End(), "access window is open ended")

	participants, err := h.participantRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, project.RolePrincipalInvestigator, participants[0].Role())

	assert.EqualValues(t, 1, h.countRows(t, &models.PersonModel{}))

	// Raw topic, raw subject, mapped topic and mapped subject each
	// yield one link.
	links, err := h.categorisationRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)
	assert.Len(t, links, 4)

	// Registry-sourced terms land under the fixed registry scheme.
	gtrScheme, err := h.schemeRepo.GetByNamespace(ctx, "gtr")
	require.NoError(t, err)
	require.NotNil(t, gtrScheme)
	raw, err := h.termRepo.GetByIdentifier(ctx, "TOPIC-SEAICE")
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, gtrScheme.ID(), raw.SchemeID())
	assert.Equal(t, "gtr.TOPIC-SEAICE", raw.Path())
}

func TestImportGrant_UpdateInPlace(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	_, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)

	first, err := h.grantRepo.GetByReference(ctx, testReference)
	require.NoError(t, err)
	firstProject := h.projectOf(t, testReference)

	h.registry.routes["/projects/P1"]["status"] = "Closed"

	result, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.False(t, result.Created)

	second, err := h.grantRepo.GetByReference(ctx, testReference)
	require.NoError(t, err)
	assert.Equal(t, grant.StatusClosed, second.Status())

	// Same rows, same identifiers: the update path overwrites in place.
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, first.NID(), second.NID())
	secondProject := h.projectOf(t, testReference)
	assert.Equal(t, firstProject.ID(), secondProject.ID())
	assert.Equal(t, firstProject.NID(), secondProject.NID())

	assert.EqualValues(t, 1, h.countRows(t, &models.GrantModel{}))
	assert.EqualValues(t, 1, h.countRows(t, &models.ProjectModel{}))
	assert.EqualValues(t, 1, h.countRows(t, &models.AllocationModel{}))
}

func TestImportGrant_Idempotent(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	_, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)
	_, err = h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)

	assert.EqualValues(t, 1, h.countRows(t, &models.GrantModel{}))
	assert.EqualValues(t, 1, h.countRows(t, &models.ProjectModel{}))
	assert.EqualValues(t, 1, h.countRows(t, &models.AllocationModel{}))
	assert.EqualValues(t, 1, h.countRows(t, &models.PersonModel{}))
	assert.EqualValues(t, 1, h.countRows(t, &models.ParticipantModel{}))

	p := h.projectOf(t, testReference)
	links, err := h.categorisationRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)
	assert.Len(t, links, 4)
}

func TestImportGrant_PersonDedup(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	// A second person resource with the same name and employer: the
	// identity triple resolves both URIs to one local person.
	h.registry.routes["/persons/PI2"] = map[string]any{
		"firstName": "Rachel",
		"surname":   "Stone",
		"links": map[string]any{
			"link": []any{
				link("EMPLOYED", h.registry.url("/organisations/EMPLOYER")),
			},
		},
	}
	projectRecord := h.registry.routes["/projects/P1"]
	projectRecord["links"] = map[string]any{
		"link": []any{
			link("FUND", h.registry.url("/funds/F1")),
			link("PI_PER", h.registry.url("/persons/PI1")),
			link("COI_PER", h.registry.url("/persons/PI2")),
		},
	}

	_, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)

	assert.EqualValues(t, 1, h.countRows(t, &models.PersonModel{}))

	p := h.projectOf(t, testReference)
	participants, err := h.participantRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, participants[0].PersonID(), participants[1].PersonID())

	roles := map[project.Role]bool{}
	for _, participant := range participants {
		roles[participant.Role()] = true
	}
	assert.True(t, roles[project.RolePrincipalInvestigator])
	assert.True(t, roles[project.RoleCoInvestigator])
}

func TestImportGrant_CategoryDelta(t *testing.T) {
	h := setupHarness(t,
		map[string]string{
			"TOPIC-SEAICE": "curated.seaice",
			"TOPIC-OCEAN":  "curated.climate",
		},
		map[string]string{"SUBJ-CLIM": "curated.climate"},
	)
	ctx := context.Background()

	_, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)

	p := h.projectOf(t, testReference)
	before, err := h.categorisationRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)
	require.Len(t, before, 4)

	beforeByTerm := map[uint]uint{}
	for _, linkRow := range before {
		beforeByTerm[linkRow.TermID()] = linkRow.ID()
	}

	// Swap the topic: TOPIC-SEAICE out, TOPIC-OCEAN in. The subject and
	// its mapped identifier survive, so their rows must not be touched.
	h.registry.routes["/projects/P1"]["researchTopics"] = map[string]any{
		"researchTopic": []any{
			map[string]any{"id": "TOPIC-OCEAN", "text": "Ocean Circulation"},
		},
	}

	_, err = h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)

	after, err := h.categorisationRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)
	// Incoming: TOPIC-OCEAN, SUBJ-CLIM, curated.climate (mapped by both).
	require.Len(t, after, 3)

	staleTerm, err := h.termRepo.GetByIdentifier(ctx, "TOPIC-SEAICE")
	require.NoError(t, err)
	require.NotNil(t, staleTerm, "stale terms stay, only links go")

	survivingSubject, err := h.termRepo.GetByIdentifier(ctx, "SUBJ-CLIM")
	require.NoError(t, err)

	for _, linkRow := range after {
		assert.NotEqual(t, staleTerm.ID(), linkRow.TermID())
		if previousID, ok := beforeByTerm[linkRow.TermID()]; ok && linkRow.TermID() == survivingSubject.ID() {
			assert.Equal(t, previousID, linkRow.ID(), "surviving link row is untouched")
		}
	}
}

func TestImportGrant_JunkIdentifiersFiltered(t *testing.T) {
	h := setupHarness(t,
		map[string]string{
			"TOPIC-SEAICE": "curated.seaice",
			"none":         "none",
		},
		map[string]string{
			"SUBJ-CLIM": "https://gtr.ukri.org/unclassified",
		},
	)
	ctx := context.Background()

	h.registry.routes["/projects/P1"]["researchTopics"] = map[string]any{
		"researchTopic": []any{
			map[string]any{"id": "TOPIC-SEAICE", "text": "Sea Ice"},
			map[string]any{"id": "none", "text": "Unclassified"},
		},
	}

	_, err := h.useCase.Execute(ctx, testReference)
	require.NoError(t, err)

	p := h.projectOf(t, testReference)
	links, err := h.categorisationRepo.ListByProjectID(ctx, p.ID())
	require.NoError(t, err)

	// TOPIC-SEAICE, SUBJ-CLIM and curated.seaice link; "none" and the
	// URL-shaped mapped subject are dropped.
	assert.Len(t, links, 3)
	for _, linkRow := range links {
		term, err := h.termRepo.GetByID(ctx, linkRow.TermID())
		require.NoError(t, err)
		require.NotNil(t, term)
		assert.NotEqual(t, "none", term.Identifier())
		assert.NotContains(t, term.Identifier(), "://")
	}
}

func TestImportGrant_UnmappedTopicRollsBack(t *testing.T) {
	h := setupHarness(t, map[string]string{}, nil)
	ctx := context.Background()

	result, err := h.useCase.Execute(ctx, testReference)
	require.Error(t, err)
	assert.True(t, gtr.IsUnmapped(err))

	var topicErr *gtr.UnmappedTopicError
	require.ErrorAs(t, err, &topicErr)
	assert.Equal(t, "TOPIC-SEAICE", topicErr.ID)

	require.NotNil(t, result)
	assert.Contains(t, result.Message, "unmapped topic")
	assert.Contains(t, result.Message, testReference)

	// The whole import rolled back: no grant, project, allocation,
	// person or link row survives, not even the upserted terms.
	assert.EqualValues(t, 0, h.countRows(t, &models.GrantModel{}))
	assert.EqualValues(t, 0, h.countRows(t, &models.ProjectModel{}))
	assert.EqualValues(t, 0, h.countRows(t, &models.AllocationModel{}))
	assert.EqualValues(t, 0, h.countRows(t, &models.ParticipantModel{}))
	assert.EqualValues(t, 0, h.countRows(t, &models.CategorisationModel{}))

	data, err := os.ReadFile(h.unmappedLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "unmapped topic TOPIC-SEAICE")
}

func TestImportGrant_UnmappedOrganisationRollsBack(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	h.registry.routes["/organisations/UNKNOWN"] = map[string]any{
		"name": "Unknown Institute",
	}
	h.registry.routes["/persons/PI1"]["links"] = map[string]any{
		"link": []any{
			link("EMPLOYED", h.registry.url("/organisations/UNKNOWN")),
		},
	}

	result, err := h.useCase.Execute(ctx, testReference)
	require.Error(t, err)
	assert.True(t, gtr.IsUnmapped(err))

	var orgErr *gtr.UnmappedOrganisationError
	require.ErrorAs(t, err, &orgErr)
	assert.Equal(t, h.registry.url("/organisations/UNKNOWN"), orgErr.ResourceURI)

	require.NotNil(t, result)
	assert.Contains(t, result.Message, "unmapped organisation")

	assert.EqualValues(t, 0, h.countRows(t, &models.GrantModel{}))
	assert.EqualValues(t, 0, h.countRows(t, &models.ProjectModel{}))
}

func TestImportGrant_ReferenceMismatch(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	h.registry.routes["/projects/P1"]["identifiers"] = map[string]any{
		"identifier": []any{
			map[string]any{"value": "NE/OTHER/1", "type": "RCUK"},
		},
	}

	_, err := h.useCase.Execute(ctx, testReference)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match import reference")

	assert.EqualValues(t, 0, h.countRows(t, &models.GrantModel{}))
}

func TestImportGrant_NotFound(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	h.registry.routes["/projects"] = map[string]any{"project": []any{}}

	result, err := h.useCase.Execute(ctx, testReference)
	require.ErrorIs(t, err, gtr.ErrProjectNotFound)
	require.NotNil(t, result)
	assert.Contains(t, result.Message, "no external project found")
}

func TestImportGrant_AmbiguousReference(t *testing.T) {
	h := setupHarness(t, nil, nil)
	ctx := context.Background()

	h.registry.routes["/projects"] = map[string]any{
		"project": []any{
			map[string]any{"href": h.registry.url("/projects/P1")},
			map[string]any{"href": h.registry.url("/projects/P2")},
		},
	}

	_, err := h.useCase.Execute(ctx, testReference)
	require.ErrorIs(t, err, gtr.ErrAmbiguousReference)
}
