package bulkload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"floe/internal/domain/organisation"
	"floe/internal/infrastructure/migration"
	"floe/internal/infrastructure/repository"
	"floe/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(migration.AutoMigrateModels()...))
	return database
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOrganisationLoader(t *testing.T) {
	ctx := context.Background()
	log := logger.NewLogger()
	orgRepo := repository.NewOrganisationRepository(setupTestDB(t), log)
	loader := NewOrganisationLoader(orgRepo, log)

	t.Run("creates organisations from the bulk file", func(t *testing.T) {
		path := writeFixture(t, "organisations.json", `[
			{"name": "Natural Environment Research Council", "registry_id": "GB-GOR-NE", "acronym": "NERC"},
			{"name": "University of Leeds", "registry_id": "GB-UNIV-LEEDS", "website": "https://leeds.ac.uk"}
		]`)

		applied, err := loader.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, applied)

		org, err := orgRepo.GetByRegistryID(ctx, "GB-GOR-NE")
		require.NoError(t, err)
		require.NotNil(t, org)
		assert.Equal(t, "NERC", org.Acronym())
	})

	t.Run("reloading updates existing rows in place", func(t *testing.T) {
		before, err := orgRepo.GetByRegistryID(ctx, "GB-GOR-NE")
		require.NoError(t, err)
		require.NotNil(t, before)

		path := writeFixture(t, "organisations.json", `[
			{"name": "Natural Environment Research Council", "registry_id": "GB-GOR-NE", "acronym": "NERC", "website": "https://nerc.ukri.org"}
		]`)

		applied, err := loader.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 1, applied)

		after, err := orgRepo.GetByRegistryID(ctx, "GB-GOR-NE")
		require.NoError(t, err)
		require.NotNil(t, after)
		assert.Equal(t, before.ID(), after.ID())
		assert.Equal(t, "https://nerc.ukri.org", after.Website())

		_, total, err := orgRepo.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("missing registry_id fails with location", func(t *testing.T) {
		path := writeFixture(t, "organisations.json", `[
			{"name": "No Registry Entry"}
		]`)

		_, err := loader.Load(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registry_id")
	})

	t.Run("missing name fails domain validation", func(t *testing.T) {
		path := writeFixture(t, "organisations.json", `[
			{"registry_id": "GB-NAMELESS"}
		]`)

		_, err := loader.Load(ctx, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, organisation.ErrNameRequired)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		path := writeFixture(t, "organisations.json", `not json`)

		_, err := loader.Load(ctx, path)
		require.Error(t, err)
	})
}
