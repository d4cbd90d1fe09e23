package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/maizzle/cli/internal/branding"
	"github.com/maizzle/cli/internal/config"
	"github.com/maizzle/cli/internal/ctxlog"
	"github.com/maizzle/cli/internal/framework"
	"github.com/maizzle/cli/internal/pkgmeta"
	"github.com/maizzle/cli/internal/scaffold"
	"github.com/maizzle/cli/internal/updater"
)

// ProjectCreator creates a new project from a starter repository.
type ProjectCreator interface {
	Create(ctx context.Context, opts scaffold.ProjectOptions) (string, error)
}

// NotifyFunc writes an update notice to w. Its error is informational only.
type NotifyFunc func(ctx context.Context, w io.Writer) error

// App holds build info and the collaborators commands run against.
type App struct {
	Version string
	Commit  string
	Date    string

	Stdout io.Writer
	Stderr io.Writer

	// WorkDir is the project root commands operate on.
	WorkDir string

	Resolver framework.Resolver
	Projects ProjectCreator

	// NotifyFramework runs after a successful build. Nil disables it.
	NotifyFramework NotifyFunc
	// RefreshCLIVersion starts the CLI version check before a command runs.
	// Nil disables it.
	RefreshCLIVersion func(ctx context.Context) <-chan struct{}
	// CLIBanner runs after every successful command. Nil disables it.
	CLIBanner func(ctx context.Context, w io.Writer)

	refreshed <-chan struct{}
}

// NewApp returns an App wired to the real framework, git, npm and update
// sources for the current working directory.
func NewApp(version, commit, date string) (*App, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	app := &App{
		Version:  version,
		Commit:   commit,
		Date:     date,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		WorkDir:  wd,
		Resolver: &framework.NodeResolver{Dir: wd},
		Projects: &scaffold.ProjectCreator{},
	}
	app.NotifyFramework = app.notifyFramework
	app.RefreshCLIVersion = app.refreshCLIVersion
	app.CLIBanner = app.printCLIBanner
	return app, nil
}

// updateChecksEnabled reports whether update notifications may run.
func updateChecksEnabled() bool {
	if os.Getenv(branding.EnvVar("NO_UPDATE_NOTIFIER")) != "" {
		return false
	}
	return config.GetBool(config.KeyUpdateCheck)
}

// notifyFramework compares the installed framework against the npm registry.
func (a *App) notifyFramework(ctx context.Context, w io.Writer) error {
	if !updateChecksEnabled() {
		return nil
	}
	pkg, err := pkgmeta.ReadFramework(a.WorkDir)
	if err != nil {
		return err
	}

	src := updater.NPMRegistry{
		Package:  branding.FrameworkPackage(),
		Registry: config.Get(config.KeyRegistry),
	}
	return updater.New(pkg.Version, src, config.Dir()).Notify(ctx, w)
}

// cliUpdater returns the updater for the CLI itself, or nil when update
// checks are off.
func (a *App) cliUpdater() *updater.Updater {
	if !updateChecksEnabled() || a.Version == "dev" {
		return nil
	}
	src := updater.GitHubReleases{Repo: branding.GitHubRepo(), Command: branding.CLIName()}
	return updater.New(a.Version, src, config.Dir())
}

// refreshCLIVersion re-checks GitHub in the background when the cache is stale.
func (a *App) refreshCLIVersion(ctx context.Context) <-chan struct{} {
	u := a.cliUpdater()
	if u == nil {
		return nil
	}
	return u.RefreshIfStale(ctx)
}

// printCLIBanner prints a cached CLI update notice without blocking.
func (a *App) printCLIBanner(_ context.Context, w io.Writer) {
	if u := a.cliUpdater(); u != nil {
		u.PrintCachedBanner(w)
	}
}

// waitForRefresh blocks until the CLI version check started for this run has
// finished, or max has elapsed.
func (a *App) waitForRefresh(max time.Duration) {
	if a.refreshed == nil {
		return
	}
	select {
	case <-a.refreshed:
	case <-time.After(max):
	}
}

// runNotifier calls the framework notifier and discards its outcome.
func (a *App) runNotifier(ctx context.Context) {
	if a.NotifyFramework == nil {
		return
	}
	if err := a.NotifyFramework(ctx, a.Stdout); err != nil {
		ctxlog.FromContext(ctx).Debug("framework update check failed", "error", err)
	}
}
