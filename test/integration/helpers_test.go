//go:build integration

package integration_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/reactforge/internal/pipeline"
	"github.com/agentx-labs/reactforge/internal/project"
)

// setupTestEnv isolates the user config and returns a parent directory for
// new projects.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("REACTFORGE_HOME", t.TempDir())
	return t.TempDir()
}

// requireTools skips the test unless every tool is on PATH.
func requireTools(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not found on PATH", name)
		}
	}
}

// requireNetwork skips tests that download packages.
func requireNetwork(t *testing.T) {
	t.Helper()
	if os.Getenv("REACTFORGE_NETWORK_TESTS") == "" {
		t.Skip("set REACTFORGE_NETWORK_TESTS=1 to run tests that hit the npm registry")
	}
}

func createProject(t *testing.T, opts project.Options) *pipeline.Result {
	t.Helper()
	steps, err := project.Plan(opts)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	runner := &pipeline.Runner{}
	result, err := runner.Run(context.Background(), opts.ParentDir, steps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func readFile(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(parts...))
	if err != nil {
		t.Fatalf("reading %s: %v", filepath.Join(parts...), err)
	}
	return string(data)
}
