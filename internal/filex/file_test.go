package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "downloads", "nested")

	got, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()

	_, err := EnsureDir(tmp)
	require.NoError(t, err)
	_, err = EnsureDir(tmp)
	require.NoError(t, err)
}

func TestWriteFileAtomic_WritesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":1}`), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(data))
}

func TestWriteFileAtomic_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	require.NoError(t, WriteFileAtomic(path, []byte("x"), 0o600))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "state.json", entries[0].Name())
}
