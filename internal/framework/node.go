package framework

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/maizzle/cli/internal/branding"
	"github.com/maizzle/cli/internal/ctxlog"
)

//go:embed shim.js
var shimSource string

// exitModuleNotFound is the status shim.js exits with when loading the
// framework throws MODULE_NOT_FOUND.
const exitModuleNotFound = 78

// Operations passed to the shim.
const (
	opBuild = "build"
	opServe = "serve"
)

// NodeResolver resolves the framework from a project directory and runs it
// with the node binary found on PATH.
type NodeResolver struct {
	// Dir is the project root. Empty means the current working directory.
	Dir string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Resolve probes the module path for bin and returns a runnable framework.
// A missing module yields an error wrapping ErrNotFound.
func (r *NodeResolver) Resolve(ctx context.Context, bin string) (Framework, error) {
	dir := r.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}

	modulePath := ModulePath(dir, bin)
	ctxlog.FromContext(ctx).Debug("resolving framework", "path", modulePath)
	if err := Probe(modulePath); err != nil {
		return nil, err
	}

	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return nil, fmt.Errorf("framework requires Node.js: %w", err)
	}

	return &NodeFramework{
		Node:       nodeBin,
		ModulePath: modulePath,
		Dir:        dir,
		Stdout:     r.Stdout,
		Stderr:     r.Stderr,
	}, nil
}

// NodeFramework runs build and serve from a resolved framework module.
type NodeFramework struct {
	Node       string
	ModulePath string
	Dir        string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Build invokes the module's build(env) and waits for it to settle.
func (n *NodeFramework) Build(ctx context.Context, env string) error {
	return n.run(ctx, opBuild, env, "")
}

// Serve invokes the module's serve(env, cfg). It returns when the dev server
// exits or ctx is cancelled.
func (n *NodeFramework) Serve(ctx context.Context, env string, cfg ServeConfig) error {
	cfgJSON, err := cfg.JSON()
	if err != nil {
		return err
	}
	return n.run(ctx, opServe, env, cfgJSON)
}

func (n *NodeFramework) run(ctx context.Context, op, env, serveConfig string) error {
	cmd := exec.CommandContext(ctx, n.Node, "-e", shimSource)
	cmd.Dir = n.Dir
	cmd.Env = buildShimEnv(os.Environ(), n.ModulePath, op, env, serveConfig)

	cmd.Stdout = n.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = n.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Stdin = os.Stdin

	ctxlog.FromContext(ctx).Debug("delegating to framework", "op", op, "env", env, "module", n.ModulePath)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if exitErr.ExitCode() == exitModuleNotFound {
			return fmt.Errorf("%w: loading %s", ErrNotFound, n.ModulePath)
		}
		return &RunError{Op: op, ExitCode: exitErr.ExitCode()}
	}
	return fmt.Errorf("executing framework %s: %w", op, err)
}

// buildShimEnv constructs the environment for the shim process. It inherits
// base and adds the variables shim.js reads.
func buildShimEnv(base []string, modulePath, op, env, serveConfig string) []string {
	vars := append([]string(nil), base...)
	vars = setEnv(vars, branding.EnvVar("FRAMEWORK_PATH"), modulePath)
	vars = setEnv(vars, branding.EnvVar("OP"), op)
	vars = setEnv(vars, branding.EnvVar("ENV"), env)
	if serveConfig != "" {
		vars = setEnv(vars, branding.EnvVar("SERVE_CONFIG"), serveConfig)
	}
	return vars
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
