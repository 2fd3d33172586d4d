//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // ZIGGLE_HOME, holds config.yaml
	ProjectDir string // parent of the generated project
}

// setupTestEnv isolates the config directory and skips the test when the
// real toolchains are not installed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	requireTool(t, "zig")
	requireTool(t, "cargo")

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("ZIGGLE_HOME", env.HomeDir)
	return env
}

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not on PATH", name)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.NoError(t, err, "expected %s to exist", filepath.Base(path))
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "expected %s to be absent", path)
}
