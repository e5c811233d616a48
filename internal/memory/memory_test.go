package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralforge/neuralforge/internal/store"
	"github.com/neuralforge/neuralforge/pkg/models"
)

func setupBuffer(t *testing.T) *Buffer {
	t.Helper()
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func addEntry(t *testing.T, buf *Buffer, agent, task, response string, rating int) int64 {
	t.Helper()
	id, err := buf.Add(models.MemoryEntry{
		AgentName:     agent,
		Task:          task,
		Response:      response,
		SuccessRating: rating,
		ModelUsed:     "test-model",
		TokensUsed:    100,
	})
	require.NoError(t, err)
	return id
}

func TestAddAndRecent(t *testing.T) {
	buf := setupBuffer(t)

	id := addEntry(t, buf, "coder", "write tests for the parser", "done, 12 tests", 4)
	assert.Greater(t, id, int64(0))

	entries, err := buf.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "coder", entries[0].AgentName)
	assert.Equal(t, 4, entries[0].SuccessRating)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAddRejectsInvalidRating(t *testing.T) {
	buf := setupBuffer(t)

	_, err := buf.Add(models.MemoryEntry{AgentName: "a", Task: "t", Response: "r", SuccessRating: 9})
	assert.Error(t, err)
	_, err = buf.Add(models.MemoryEntry{AgentName: "a", Task: "t", Response: "r", SuccessRating: 0})
	assert.Error(t, err)
}

func TestAddRoundTripsMetadata(t *testing.T) {
	buf := setupBuffer(t)

	_, err := buf.Add(models.MemoryEntry{
		AgentName:     "coder",
		Task:          "deploy the service",
		Response:      "deployed",
		SuccessRating: 5,
		Metadata:      map[string]string{"env": "staging"},
	})
	require.NoError(t, err)

	entries, err := buf.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "staging", entries[0].Metadata["env"])
}

func TestQueryRanksTaskMatchesHigher(t *testing.T) {
	buf := setupBuffer(t)

	addEntry(t, buf, "coder", "refactor the database layer", "split into store and memory", 4)
	addEntry(t, buf, "coder", "write documentation", "mentioned the database in passing", 3)
	addEntry(t, buf, "writer", "draft a blog post", "published", 5)

	entries, err := buf.Query("database refactor", "", 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Task-text hits weigh double, so the refactor entry ranks first.
	assert.Equal(t, "refactor the database layer", entries[0].Task)
	assert.Greater(t, entries[0].RelevanceScore, entries[1].RelevanceScore)
}

func TestQueryFiltersByAgent(t *testing.T) {
	buf := setupBuffer(t)

	addEntry(t, buf, "coder", "optimize database queries", "added indexes", 4)
	addEntry(t, buf, "writer", "database article", "written", 4)

	entries, err := buf.Query("database", "coder", 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "coder", entries[0].AgentName)
}

func TestQueryEmptyTask(t *testing.T) {
	buf := setupBuffer(t)
	addEntry(t, buf, "coder", "anything", "response", 3)

	entries, err := buf.Query("", "", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Words of one or two characters are dropped entirely.
	entries, err = buf.Query("a an of", "", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStats(t *testing.T) {
	buf := setupBuffer(t)

	stats, err := buf.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalEntries)

	addEntry(t, buf, "coder", "task one", "response one", 4)
	addEntry(t, buf, "coder", "task two", "response two", 2)

	stats, err = buf.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.InDelta(t, 3.0, stats.AvgSuccessRating, 1e-9)
	assert.Equal(t, 200, stats.TotalTokensUsed)
	assert.Equal(t, "test-model", stats.TopModel)
}
