package framework

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maizzle/cli/internal/branding"
)

// ErrNotFound is returned when the framework module cannot be resolved or
// loaded from the project. It is never returned for failures that happen
// after the module was loaded.
var ErrNotFound = errors.New("framework not found")

// Framework is the delegated build/serve implementation living in the
// consuming project.
type Framework interface {
	// Build compiles the project's templates for the given environment.
	Build(ctx context.Context, env string) error
	// Serve starts the development server and blocks until it exits or ctx
	// is cancelled.
	Serve(ctx context.Context, env string, cfg ServeConfig) error
}

// Resolver turns an optional user-supplied module path into a Framework.
type Resolver interface {
	Resolve(ctx context.Context, bin string) (Framework, error)
}

// ServeConfig is the options object handed to the framework's serve.
type ServeConfig struct {
	Build BuildOptions `json:"build"`
}

// BuildOptions holds the build section of ServeConfig.
type BuildOptions struct {
	Console ConsoleOptions `json:"console"`
}

// ConsoleOptions controls terminal output while serving.
type ConsoleOptions struct {
	Clear bool `json:"clear"`
}

// NewServeConfig returns the serve options for the --noclear flag value.
func NewServeConfig(noClear bool) ServeConfig {
	return ServeConfig{Build: BuildOptions{Console: ConsoleOptions{Clear: !noClear}}}
}

// JSON encodes the config the way the framework expects it.
func (c ServeConfig) JSON() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshaling serve config: %w", err)
	}
	return string(data), nil
}

// RunError reports a delegated operation that loaded the framework but did
// not complete successfully.
type RunError struct {
	Op       string
	ExitCode int
}

func (e *RunError) Error() string {
	return fmt.Sprintf("framework %s exited with status %d", e.Op, e.ExitCode)
}

// ModulePath returns the module path for bin, relative to projectDir. An
// empty bin selects the default location inside node_modules.
func ModulePath(projectDir, bin string) string {
	if bin == "" {
		return filepath.Join(projectDir, branding.FrameworkEntry())
	}
	if filepath.IsAbs(bin) {
		return filepath.Clean(bin)
	}
	return filepath.Join(projectDir, bin)
}

// entryCandidates are the files that make a directory loadable by require().
var entryCandidates = []string{"package.json", "index.js", "index.cjs"}

// Probe reports whether path looks like a loadable module: an existing file,
// or a directory containing a package.json or an index file.
func Probe(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !info.IsDir() {
		return nil
	}
	for _, name := range entryCandidates {
		if _, err := os.Stat(filepath.Join(path, name)); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: no entry point in %s", ErrNotFound, path)
}
