package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/maizzle/cli/internal/ctxlog"
)

// stagingPattern names the temporary clone directory, e.g. "newsletter.tmp-123".
const stagingPattern = ".tmp-*"

// ProjectCreator clones starter repositories and installs their dependencies.
type ProjectCreator struct {
	// Git and NPM name the binaries to run; defaults are "git" and "npm".
	Git string
	NPM string

	// Stdout and Stderr receive npm output; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// ProjectOptions describes one "new" invocation.
type ProjectOptions struct {
	Repo        string // owner/name shorthand, URL or local path
	Path        string // target directory; derived from Repo when empty
	InstallDeps bool
}

// RepoURL expands an owner/name shorthand to a GitHub clone URL. URLs, scp
// style remotes and existing local paths are returned unchanged.
func RepoURL(repo string) string {
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		return repo
	}
	if _, err := os.Stat(repo); err == nil {
		return repo
	}
	parts := strings.Split(repo, "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return fmt.Sprintf("https://github.com/%s/%s.git", parts[0], strings.TrimSuffix(parts[1], ".git"))
	}
	return repo
}

// DefaultProjectPath derives a directory name from a repository reference.
func DefaultProjectPath(repo string) string {
	base := strings.TrimRight(repo, "/")
	if i := strings.LastIndexAny(base, "/:"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".git")
}

// Create clones the starter into opts.Path and optionally runs npm install.
// It returns the absolute project path.
func (p *ProjectCreator) Create(ctx context.Context, opts ProjectOptions) (string, error) {
	if err := p.ensureBinary(p.git()); err != nil {
		return "", err
	}

	target := opts.Path
	if target == "" {
		target = DefaultProjectPath(opts.Repo)
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}

	if err := ensureEmptyDir(target); err != nil {
		return "", err
	}

	if err := p.clone(ctx, RepoURL(opts.Repo), target); err != nil {
		return "", err
	}

	if opts.InstallDeps {
		if err := p.Install(ctx, target); err != nil {
			return target, err
		}
	}
	return target, nil
}

// clone performs a shallow clone into a fresh staging directory next to
// target, drops its git history and renames it into place. Only the staging
// directory created here is removed on failure.
func (p *ProjectCreator) clone(ctx context.Context, repoURL, target string) error {
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	tmpDir, err := os.MkdirTemp(parent, filepath.Base(target)+stagingPattern)
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	// MkdirTemp creates 0700; the project should get normal permissions.
	if err := os.Chmod(tmpDir, 0755); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("preparing staging directory: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("cloning starter", "repo", repoURL, "dir", tmpDir)
	cmd := exec.CommandContext(ctx, p.git(), "clone", "--depth=1", repoURL, tmpDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning %s: %w\n%s", repoURL, err, strings.TrimSpace(string(output)))
	}

	if err := os.RemoveAll(filepath.Join(tmpDir, ".git")); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing starter git history: %w", err)
	}

	// The target may exist as an empty directory.
	_ = os.Remove(target)
	if err := os.Rename(tmpDir, target); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing project directory: %w", err)
	}
	return nil
}

// Install runs npm install inside dir.
func (p *ProjectCreator) Install(ctx context.Context, dir string) error {
	npm := p.NPM
	if npm == "" {
		npm = "npm"
	}
	if err := p.ensureBinary(npm); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, npm, "install")
	cmd.Dir = dir
	cmd.Stdout = p.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = p.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}
	return nil
}

func (p *ProjectCreator) git() string {
	if p.Git == "" {
		return "git"
	}
	return p.Git
}

func (p *ProjectCreator) ensureBinary(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s is required but not found in PATH", name)
	}
	return nil
}

// ensureEmptyDir accepts a missing directory or an empty one.
func ensureEmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s is not empty; choose another path", dir)
	}
	return nil
}
