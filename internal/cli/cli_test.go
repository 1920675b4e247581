package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivtomov/task-manager/internal/menu"
	tu "github.com/ivtomov/task-manager/internal/testutil"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

// executeContext always passes ctx since cobra keeps the last one it saw.
func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	tu.WithConfigHome(t)
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestConfigSchema(t *testing.T) {
	out, err := execute(t, "", "config", "schema")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "taskmgr configuration", doc["title"])
}

func TestSession_EndToEnd(t *testing.T) {
	p := tu.LogPath(t)
	out, err := execute(t, "1\n7\n0\n5\n7\n", "--log-file", p, "--prompt", "line", "--logger", "goroutine")
	require.NoError(t, err)
	assert.Equal(t, "Task 1 started with int parameter: 7, pause duration: 0 ms\nTask 2 stopped\n", tu.ReadFile(t, p))
	assert.Contains(t, out, "File processing completed.")
}

func TestSession_InterruptedSkipsReplay(t *testing.T) {
	p := tu.LogPath(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := executeContext(t, ctx, "4\n7\n", "--log-file", p, "--prompt", "line", "--logger", "goroutine")
	require.ErrorIs(t, err, menu.ErrInterrupted)
	assert.Equal(t, 130, exitCode(err))
	assert.Empty(t, tu.ReadFile(t, p))
	assert.NotContains(t, out, "File processing completed.")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 130, exitCode(fmt.Errorf("session: %w", menu.ErrInterrupted)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestSession_RejectsBadFlag(t *testing.T) {
	_, err := execute(t, "", "--log-file", tu.LogPath(t), "--color-scheme", "rainbow")
	assert.ErrorContains(t, err, `unknown color_scheme "rainbow"`)
	require.NoError(t, rootCmd.Flags().Set("color-scheme", "task"))
}

func TestReplay_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "legacy.txt")
	require.NoError(t, os.WriteFile(p, []byte("\x1b[34mTask 3 stopped\x1b[0m\nTask 1 stopped\n"), 0o644))

	out, err := execute(t, "", "replay", p, "--match", "Task 3")
	require.NoError(t, err)
	assert.Equal(t, "Task 3 stopped\n", out)
	replayMatch = ""
}
