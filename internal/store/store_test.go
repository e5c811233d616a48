package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewCreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := New(path)
	require.NoError(t, err)
	defer db.Close()

	// Schema is queryable right away.
	var n int
	err = db.Conn().QueryRow(`SELECT COUNT(*) FROM command_log`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestLogCommandRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	id, err := db.LogCommand("session-1", "organize my downloads folder", "organize_files", 0.9, "ok", 120*time.Millisecond)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	_, err = db.LogCommand("session-1", "flibber jabber", "", 0, "no_match", time.Millisecond)
	require.NoError(t, err)

	logs, err := db.RecentLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	// Newest first.
	assert.Equal(t, "flibber jabber", logs[0].Input)
	assert.Equal(t, "no_match", logs[0].Status)
	assert.Equal(t, "organize_files", logs[1].Action)
	assert.InDelta(t, 0.9, logs[1].Confidence, 1e-9)
	assert.Equal(t, int64(120), logs[1].DurationMs)
	assert.False(t, logs[1].Timestamp.IsZero())
}

func TestRecentLogsHonorsLimit(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 5; i++ {
		_, err := db.LogCommand("s", "input", "help", 0.7, "ok", 0)
		require.NoError(t, err)
	}

	logs, err := db.RecentLogs(3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
