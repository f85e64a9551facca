package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "users.db")

	db, err := New(Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "users", db.Name())
	assert.Equal(t, path, db.Path())

	require.NoError(t, db.Migrate(context.Background()))
	// idempotent
	require.NoError(t, db.Migrate(context.Background()))

	var n int
	err = db.Conn().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'password_resets')`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBuildConnectionString(t *testing.T) {
	assert.Equal(t,
		"/tmp/x.db?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		buildConnectionString("/tmp/x.db"))
	assert.Contains(t, buildConnectionString("file:test?mode=memory"), "file:test?mode=memory&_pragma=")
}
