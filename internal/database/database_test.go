package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"tournaments", "couples", "tournament_players", "draws", "activity_totals", "player_levels"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.db")

	_, teardown, err := InitDB(path, "", "", "../../migrations")
	require.NoError(t, err)
	teardown()

	db, teardown, err := InitDB(path, "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestInitDB_MissingMigrations(t *testing.T) {
	_, _, err := InitDB(":memory:", "", "", "./does-not-exist")
	assert.Error(t, err)
}
