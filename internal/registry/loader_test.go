package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDir_PicksExecutablesOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exec-bit scan is POSIX-specific")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stockfish"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lc0"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not an engine"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "books"), 0o755))

	engines, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, engines, 2)
	ids := map[string]bool{}
	for _, e := range engines {
		ids[e.ID] = true
		require.True(t, filepath.IsAbs(e.Path))
	}
	require.True(t, ids["stockfish"])
	require.True(t, ids["lc0"])
}

func TestLoadDir_MissingDir(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	engines, err := LoadDir(makeEnginesDir(t, "stockfish", "lc0"))
	require.NoError(t, err)

	e, err := Resolve(engines, "stockfish")
	require.NoError(t, err)
	require.Equal(t, "stockfish", e.ID)

	_, err = Resolve(engines, "komodo")
	require.Error(t, err)

	_, err = Resolve(engines, "")
	require.Error(t, err, "ambiguous with two candidates")

	only, err := Resolve(engines[:1], "")
	require.NoError(t, err)
	require.Equal(t, engines[0].ID, only.ID)
}

func makeEnginesDir(t *testing.T, names ...string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("exec-bit scan is POSIX-specific")
	}
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("#!/bin/sh\n"), 0o755))
	}
	return dir
}
