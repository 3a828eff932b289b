package sqlite

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/require"
)

func openRaw(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "raw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestMigrationDriver_Lock(t *testing.T) {
	drv, err := newMigrationDriver(openRaw(t))
	require.NoError(t, err)

	require.NoError(t, drv.Lock())
	require.ErrorIs(t, drv.Lock(), database.ErrLocked)
	require.NoError(t, drv.Unlock())
	require.ErrorIs(t, drv.Unlock(), database.ErrNotLocked)
}

func TestMigrationDriver_Version(t *testing.T) {
	drv, err := newMigrationDriver(openRaw(t))
	require.NoError(t, err)

	version, dirty, err := drv.Version()
	require.NoError(t, err)
	require.Equal(t, database.NilVersion, version)
	require.False(t, dirty)

	tests := []struct {
		name        string
		version     int
		dirty       bool
		wantVersion int
		wantDirty   bool
	}{
		{"clean", 3, false, 3, false},
		{"dirty", 4, true, 4, true},
		{"nil dirty", database.NilVersion, true, database.NilVersion, true},
		{"nil clean", database.NilVersion, false, database.NilVersion, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, drv.SetVersion(tt.version, tt.dirty))
			version, dirty, err := drv.Version()
			require.NoError(t, err)
			require.Equal(t, tt.wantVersion, version)
			require.Equal(t, tt.wantDirty, dirty)
		})
	}
}

func TestMigrationDriver_RunAndDrop(t *testing.T) {
	conn := openRaw(t)
	drv, err := newMigrationDriver(conn)
	require.NoError(t, err)

	require.NoError(t, drv.Run(strings.NewReader("CREATE TABLE a (x INTEGER); CREATE TABLE b (y INTEGER);")))
	require.Error(t, drv.Run(strings.NewReader("CREATE TABLE")))

	require.NoError(t, drv.Drop())
	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&n))
	require.Zero(t, n)
}

func TestMigrateUp_Idempotent(t *testing.T) {
	conn := openRaw(t)

	version, err := migrateUp(conn)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	version, err = migrateUp(conn)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)
}
