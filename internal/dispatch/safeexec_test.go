package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookPathAbsolute(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))

	path, err := LookPath(exe)
	require.NoError(t, err)
	assert.Equal(t, exe, path)
}

func TestLookPathRejectsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0644))

	_, err := LookPath(plain)
	assert.Error(t, err)
}

func TestLookPathSearchesPATH(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "findme")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
	t.Setenv("PATH", dir)

	path, err := LookPath("findme")
	require.NoError(t, err)
	assert.Equal(t, exe, path)

	_, err = LookPath("no-such-binary")
	assert.Error(t, err)
}
