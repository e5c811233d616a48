package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	r := NewRecorder(path)

	require.NoError(t, r.Record("user", "organize my downloads", ""))
	require.NoError(t, r.Record("assistant", "✅ done", "organize_files"))

	turns := r.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "organize_files", turns[1].Action)
	assert.Equal(t, r.SessionID(), turns[0].SessionID)
	assert.False(t, turns[0].Timestamp.IsZero())
}

func TestRecordCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.jsonl")
	r := NewRecorder(path)

	require.NoError(t, r.Record("user", "hello", ""))
	assert.FileExists(t, path)
}

func TestEmptyPathSkipsFile(t *testing.T) {
	r := NewRecorder("")
	require.NoError(t, r.Record("user", "hello", ""))
	assert.Len(t, r.Turns(), 1)
}

func TestClearDropsSessionOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	r := NewRecorder(path)
	require.NoError(t, r.Record("user", "hello", ""))

	r.Clear()
	assert.Empty(t, r.Turns())

	// The file keeps the full log.
	turns, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, turns, 1)
}

func TestLoadAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	first := NewRecorder(path)
	require.NoError(t, first.Record("user", "first session", ""))
	second := NewRecorder(path)
	require.NoError(t, second.Record("user", "second session", ""))

	turns, err := Load(path)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.NotEqual(t, turns[0].SessionID, turns[1].SessionID)
}

func TestLoadSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"session_id":"s1","role":"user","text":"ok","timestamp":"2026-08-30T10:00:00Z"}
not json at all
{"session_id":"s1","role":"assistant","text":"fine","timestamp":"2026-08-30T10:00:01Z"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	turns, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestLoadMissingFile(t *testing.T) {
	turns, err := Load(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, turns)
}
