package database

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/logging"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect("sqlite", "  ")
	assert.ErrorContains(t, err, "empty DSN")
}

func TestMigrateRecordsVersions(t *testing.T) {
	db, err := Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	var versions []int
	require.NoError(t, db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations ORDER BY version`))
	assert.Equal(t, []int{1, 2}, versions)
	assert.Equal(t, 2, SchemaVersion())

	var n int
	require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM calculations`))
	assert.Zero(t, n)
}

func TestMigrateLogsAsDatabaseComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	var buf bytes.Buffer
	require.NoError(t, logging.SetupWriter(&buf, "info", "json"))

	db, err := Connect("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(context.Background(), db))

	assert.Contains(t, buf.String(), `"component":"database"`)
	assert.Contains(t, buf.String(), `"message":"applied migration"`)
}

func TestMigrationsAscend(t *testing.T) {
	for i := 1; i < len(migrations); i++ {
		assert.Greater(t, migrations[i].Version, migrations[i-1].Version)
		assert.NotEmpty(t, migrations[i].Statements)
	}
}
