package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFile_AppendCreatesAndAppends(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "output.txt")

	lf, err := OpenLog(p, true)
	require.NoError(t, err)
	require.NoError(t, lf.Append([]byte("Task 1 stopped")))
	require.NoError(t, lf.Close())

	// reopening appends instead of truncating
	lf, err = OpenLog(p, false)
	require.NoError(t, err)
	require.NoError(t, lf.Append([]byte("Task 2 stopped")))
	require.NoError(t, lf.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "Task 1 stopped\nTask 2 stopped\n", string(b))
}

func TestOpenLog_EmptyPath(t *testing.T) {
	_, err := OpenLog("  ", false)
	assert.Error(t, err)
}

func TestOpenLog_Unwritable(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be opened for appending
	_, err := OpenLog(dir, false)
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	dir := t.TempDir()

	got, err := ReadLines(filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Empty(t, got)

	p := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(p, []byte("a\r\nb\n\nc"), 0o644))
	got, err = ReadLines(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", "c"}, got)
}
