package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "report.pdf", "pdf data")
	writeFile(t, dir, "photo.jpg", "jpg data")
	writeFile(t, dir, "notes.txt", "text")

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeFile(t, sub, "deep.txt", "more text")

	analysis, err := New(nil).Analyze(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, analysis.TotalFiles)
	assert.Equal(t, 2, analysis.FileTypes[".txt"])
	assert.Equal(t, 1, analysis.FileTypes[".pdf"])
	assert.Greater(t, analysis.TotalBytes, int64(0))
	// Everything was just written.
	assert.Len(t, analysis.RecentFiles, 4)
}

func TestAnalyzeFindsDuplicateCandidates(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "copy")
	require.NoError(t, os.MkdirAll(sub, 0755))

	// Same name and size in two directories.
	writeFile(t, dir, "dup.txt", "same size")
	writeFile(t, sub, "dup.txt", "diff data")

	analysis, err := New(nil).Analyze(dir)
	require.NoError(t, err)
	require.Len(t, analysis.Duplicates, 1)
	assert.Len(t, analysis.Duplicates[0].Files, 2)
}

func TestAnalyzeMissingDirectory(t *testing.T) {
	_, err := New(nil).Analyze(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestOrganizeMovesIntoCategories(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "report.pdf", "pdf")
	writeFile(t, src, "photo.jpg", "jpg")
	writeFile(t, src, "weird.xyz", "unknown")

	result, err := New(nil).Organize(src, src, false)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Moved)
	assert.Equal(t, 1, result.Skipped)
	assert.FileExists(t, filepath.Join(src, "Documents", "report.pdf"))
	assert.FileExists(t, filepath.Join(src, "Images", "photo.jpg"))
	// Unknown extensions stay put.
	assert.FileExists(t, filepath.Join(src, "weird.xyz"))
}

func TestOrganizeDryRunMovesNothing(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "report.pdf", "pdf")

	result, err := New(nil).Organize(src, src, true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Moved)
	require.Len(t, result.Operations, 1)
	assert.Equal(t, "would_move", result.Operations[0].Status)
	assert.FileExists(t, filepath.Join(src, "report.pdf"))
	assert.NoDirExists(t, filepath.Join(src, "Documents"))
}

func TestOrganizeResolvesNameConflicts(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "report.pdf", "new file")

	// A same-named file already sits in the target category folder.
	docs := filepath.Join(src, "Documents")
	require.NoError(t, os.MkdirAll(docs, 0755))
	writeFile(t, docs, "report.pdf", "old file")

	result, err := New(nil).Organize(src, src, false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.FileExists(t, filepath.Join(docs, "report.pdf"))
	assert.FileExists(t, filepath.Join(docs, "report_1.pdf"))
}

func TestRulesAdd(t *testing.T) {
	rules := DefaultRules()
	rules.Add("xyz", "Mystery")

	category, ok := rules.Category("file.XYZ")
	require.True(t, ok)
	assert.Equal(t, "Mystery", category)

	_, ok = rules.Category("file.unknown-ext")
	assert.False(t, ok)
}
