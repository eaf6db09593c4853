package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "deep", "snapshot.json")

	got, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create the parent directory")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "snapshot.json")

	first, err := EnsureParentDir(path)
	require.NoError(t, err)

	second, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	got, err := EnsureParentDir("snapshot.json")
	require.NoError(t, err)
	require.Equal(t, "snapshot.json", got)
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "nested")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	_, err := EnsureParentDir(filepath.Join(blocker, "snapshot.json"))
	require.Error(t, err, "should fail when a file exists with the parent's name")
}
