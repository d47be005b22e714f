package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floe/internal/domain/person"
	"floe/internal/domain/project"
	"floe/internal/shared/daterange"
	"floe/internal/shared/logger"
)

func newProjectFixture(t *testing.T, title, grantReference string) *project.Project {
	t.Helper()
	duration, err := daterange.New(
		time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	proj, err := project.New(project.Attributes{
		Title:           title,
		ProjectDuration: duration,
		GrantReference:  grantReference,
	})
	require.NoError(t, err)
	return proj
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(setupTestDB(t), logger.NewLogger())

	proj := newProjectFixture(t, "Arctic soil carbon dynamics", "NE/K011820/1")
	require.NoError(t, repo.Create(ctx, proj))
	assert.NotZero(t, proj.ID())

	t.Run("access duration drops the upper bound", func(t *testing.T) {
		found, err := repo.GetByID(ctx, proj.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.ProjectDuration().Bounded())
		assert.False(t, found.AccessDuration().Bounded())
		assert.Equal(t, found.ProjectDuration().Start(), found.AccessDuration().Start())
	})

	t.Run("get by NID", func(t *testing.T) {
		found, err := repo.GetByNID(ctx, proj.NID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, proj.ID(), found.ID())

		missing, err := repo.GetByNID(ctx, "prj_does_not_exist")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update overwrites in place", func(t *testing.T) {
		found, err := repo.GetByID(ctx, proj.ID())
		require.NoError(t, err)
		require.NotNil(t, found)

		require.NoError(t, found.Overwrite(project.Attributes{
			Title:           "Arctic soil carbon dynamics phase two",
			ProjectDuration: found.ProjectDuration(),
			GrantReference:  found.GrantReference(),
			LeadProject:     true,
		}))
		require.NoError(t, repo.Update(ctx, found))

		updated, err := repo.GetByID(ctx, proj.ID())
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Arctic soil carbon dynamics phase two", updated.Title())
		assert.True(t, updated.LeadProject())
	})
}

func TestAllocationRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	log := logger.NewLogger()
	orgRepo := NewOrganisationRepository(db, log)
	grantRepo := NewGrantRepository(db, log)
	projectRepo := NewProjectRepository(db, log)
	repo := NewAllocationRepository(db, log)

	funder := newOrganisationFixture(t, "Natural Environment Research Council", "GB-GOR-NE")
	require.NoError(t, orgRepo.Create(ctx, funder))
	g := newGrantFixture(t, "NE/K011820/1", funder.ID())
	require.NoError(t, grantRepo.Create(ctx, g))
	proj := newProjectFixture(t, "Arctic soil carbon dynamics", "NE/K011820/1")
	require.NoError(t, projectRepo.Create(ctx, proj))

	allocation, err := project.NewAllocation(proj.ID(), g.ID())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, allocation))
	assert.NotZero(t, allocation.ID())

	t.Run("get by grant ID", func(t *testing.T) {
		found, err := repo.GetByGrantID(ctx, g.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, proj.ID(), found.ProjectID())

		missing, err := repo.GetByGrantID(ctx, g.ID()+99)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list by project ID", func(t *testing.T) {
		allocations, err := repo.ListByProjectID(ctx, proj.ID())
		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.Equal(t, g.ID(), allocations[0].GrantID())
	})
}

func TestParticipantRepository_GetByIdentity(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	log := logger.NewLogger()
	projectRepo := NewProjectRepository(db, log)
	personRepo := NewPersonRepository(db, log)
	repo := NewParticipantRepository(db, log)

	proj := newProjectFixture(t, "Arctic soil carbon dynamics", "NE/K011820/1")
	require.NoError(t, projectRepo.Create(ctx, proj))
	p, err := person.New("Rachel", "Stone", "", nil)
	require.NoError(t, err)
	require.NoError(t, personRepo.Create(ctx, p))

	found, err := repo.GetByIdentity(ctx, proj.ID(), p.ID(), project.RolePrincipalInvestigator)
	require.NoError(t, err)
	assert.Nil(t, found, "no participant row yet")

	participant, err := project.NewParticipant(proj.ID(), p.ID(), project.RolePrincipalInvestigator)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, participant))

	found, err = repo.GetByIdentity(ctx, proj.ID(), p.ID(), project.RolePrincipalInvestigator)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, participant.ID(), found.ID())

	// The same person under a different role is a distinct membership.
	found, err = repo.GetByIdentity(ctx, proj.ID(), p.ID(), project.RoleCoInvestigator)
	require.NoError(t, err)
	assert.Nil(t, found)
}
