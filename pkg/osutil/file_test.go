package osutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "main.tf")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), PermissionFileOwnerOnly))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), PermissionFileOwnerOnly))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, PermissionFileOwnerOnly, info.Mode().Perm())
	}
}

func TestWriteFileAtomicBlockedByFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "generated-terraform")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), PermissionFile))

	err := WriteFileAtomic(filepath.Join(blocker, "main.tf"), []byte("x"), PermissionFile)
	require.Error(t, err)
}
