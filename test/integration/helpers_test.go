//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/maizzle/cli/internal/cli"
	"github.com/maizzle/cli/internal/config"
	"github.com/maizzle/cli/internal/framework"
	"github.com/maizzle/cli/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // MAIZZLE_HOME, holds settings and update caches
	ProjectDir string // A mock Maizzle project
}

// setupTestEnv creates isolated temp directories and points MAIZZLE_HOME at
// one of them. Update notifications are disabled so no test hits the network.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	t.Setenv("MAIZZLE_HOME", env.HomeDir)
	t.Setenv("MAIZZLE_NO_UPDATE_NOTIFIER", "1")
	config.Reset()
	config.Load()
	t.Cleanup(config.Reset)

	return env
}

// requireNode skips the test when node is not installed.
func requireNode(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("node not available, skipping")
	}
}

// setupFramework installs a fake @maizzle/framework into the project. Its
// build writes build_<env>/done.txt and its serve records the config it got.
func setupFramework(t *testing.T, projectDir, version string) string {
	t.Helper()

	pkgDir := filepath.Join(projectDir, "node_modules", "@maizzle", "framework")
	writeFile(t, filepath.Join(pkgDir, "package.json"), `{"name": "@maizzle/framework", "version": "`+version+`"}`)
	writeFile(t, filepath.Join(pkgDir, "src", "index.js"), `
const fs = require('fs')
const path = require('path')

module.exports = {
  build: async (env) => {
    const out = path.join(process.cwd(), 'build_' + env)
    fs.mkdirSync(out, { recursive: true })
    fs.writeFileSync(path.join(out, 'done.txt'), env)
  },
  serve: (env, config) => {
    fs.writeFileSync(path.join(process.cwd(), 'serve.json'), JSON.stringify({ env, config }))
  },
}
`)
	return pkgDir
}

// newApp returns an App that runs the real resolver, scaffolder and project
// creator inside env.ProjectDir.
func newApp(env *testEnv, stdout, stderr *bytes.Buffer) *cli.App {
	return &cli.App{
		Version: "1.0.0",
		Stdout:  stdout,
		Stderr:  stderr,
		WorkDir: env.ProjectDir,
		Resolver: &framework.NodeResolver{
			Dir:    env.ProjectDir,
			Stdout: stdout,
			Stderr: stderr,
		},
		Projects: &scaffold.ProjectCreator{Stdout: stdout, Stderr: stderr},
	}
}

// runCLI executes one invocation and returns its output.
func runCLI(t *testing.T, env *testEnv, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd(newApp(env, &stdout, &stderr))
	root.SetArgs(cli.NormalizeArgs(args))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}
