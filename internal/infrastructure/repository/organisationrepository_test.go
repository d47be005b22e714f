package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"floe/internal/domain/grant"
	"floe/internal/domain/organisation"
	"floe/internal/infrastructure/migration"
	"floe/internal/shared/daterange"
	"floe/internal/shared/logger"

	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(migration.AutoMigrateModels()...))
	return database
}

func newOrganisationFixture(t *testing.T, name, registryID string) *organisation.Organisation {
	t.Helper()
	org, err := organisation.New(name, registryID, "", "", "")
	require.NoError(t, err)
	return org
}

func newGrantFixture(t *testing.T, reference string, funderID uint) *grant.Grant {
	t.Helper()
	duration, err := daterange.New(
		time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	g, err := grant.New(reference, grant.Attributes{
		Title:      "Arctic soil carbon dynamics",
		Status:     grant.StatusActive,
		TotalFunds: decimal.NewFromInt(50000),
		Currency:   "GBP",
		FunderID:   funderID,
		Duration:   duration,
	})
	require.NoError(t, err)
	return g
}

func TestOrganisationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrganisationRepository(setupTestDB(t), logger.NewLogger())

	t.Run("create assigns the database ID", func(t *testing.T) {
		org := newOrganisationFixture(t, "Natural Environment Research Council", "GB-GOR-NE")

		require.NoError(t, repo.Create(ctx, org))
		assert.NotZero(t, org.ID())
	})

	t.Run("duplicate registry ID is rejected", func(t *testing.T) {
		org := newOrganisationFixture(t, "NERC duplicate", "GB-GOR-NE")

		err := repo.Create(ctx, org)
		assert.ErrorIs(t, err, organisation.ErrRegistryIDExists)
	})

	t.Run("get by registry ID", func(t *testing.T) {
		found, err := repo.GetByRegistryID(ctx, "GB-GOR-NE")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Natural Environment Research Council", found.Name())
	})

	t.Run("get by registry ID misses with nil", func(t *testing.T) {
		found, err := repo.GetByRegistryID(ctx, "GB-NOPE")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("get by NID", func(t *testing.T) {
		org := newOrganisationFixture(t, "University of Leeds", "GB-UNIV-LEEDS")
		require.NoError(t, repo.Create(ctx, org))

		found, err := repo.GetByNID(ctx, org.NID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, org.ID(), found.ID())

		missing, err := repo.GetByNID(ctx, "org_does_not_exist")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("update overwrites descriptive fields", func(t *testing.T) {
		org, err := repo.GetByRegistryID(ctx, "GB-UNIV-LEEDS")
		require.NoError(t, err)
		require.NotNil(t, org)

		require.NoError(t, org.UpdateDetails("University of Leeds", "UoL", "https://leeds.ac.uk", ""))
		require.NoError(t, repo.Update(ctx, org))

		found, err := repo.GetByID(ctx, org.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "UoL", found.Acronym())
		assert.Equal(t, "https://leeds.ac.uk", found.Website())
	})

	t.Run("list paginates ordered by name", func(t *testing.T) {
		orgs, total, err := repo.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, orgs, 2)
		assert.Equal(t, "Natural Environment Research Council", orgs[0].Name())
	})
}
