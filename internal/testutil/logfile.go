package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LogPath returns a not yet existing log file path inside a temp dir.
func LogPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "output.txt")
}

// ReadFile returns the content of path, failing the test on error.
// A missing file reads as empty.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}
