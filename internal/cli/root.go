package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/maizzle/cli/internal/branding"
	"github.com/maizzle/cli/internal/config"
	"github.com/maizzle/cli/internal/ctxlog"
	"github.com/maizzle/cli/internal/updater"
	"github.com/spf13/cobra"
)

// refreshWait bounds how long a finished command waits for the background
// CLI version check.
const refreshWait = updater.DefaultCheckTimeout

// InvalidCommandError is returned when argv names no registered command.
type InvalidCommandError struct {
	Tokens []string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("Invalid command: %s\nSee --help for a list of available commands.", strings.Join(e.Tokens, " "))
}

// NewRootCmd builds the full command tree for one invocation.
func NewRootCmd(app *App) *cobra.Command {
	var (
		showVersion bool
		debug       bool
	)

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` scaffolds email projects, layouts, templates and configs, and runs
the build and dev server of the framework installed in the current project.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &InvalidCommandError{Tokens: args}
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			on := debug || os.Getenv(branding.EnvVar("DEBUG")) != ""
			logger := ctxlog.New(app.Stderr, on)
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

			if app.RefreshCLIVersion != nil {
				app.refreshed = app.RefreshCLIVersion(cmd.Context())
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.CLIBanner != nil {
				app.CLIBanner(cmd.Context(), app.Stderr)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return printVersion(cmd.OutOrStdout(), app)
			}
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Print the CLI and framework versions")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to stderr")

	root.AddCommand(
		newNewCmd(app),
		newMakeLayoutCmd(app),
		newMakeTemplateCmd(app),
		newMakeConfigCmd(app),
		newMakeTailwindCmd(app),
		newBuildCmd(app),
		newServeCmd(app),
		newSettingsCmd(),
	)
	return root
}

// NormalizeArgs rewrites legacy spellings cobra cannot parse: the two-letter
// -nc shorthand becomes --noclear, and a separate --bin/-b value is joined
// with "=" so the flag's optional value keeps working.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case arg == "-nc":
			out = append(out, "--noclear")
		case (arg == "--bin" || arg == "-b") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-"):
			out = append(out, "--bin="+args[i+1])
			i++
		default:
			out = append(out, arg)
		}
	}
	return out
}

// Execute runs the CLI with build info injected via ldflags.
func Execute(version, commit, date string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.Load()

	app, err := NewApp(version, commit, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.Red.Sprint("Error:"), err)
		return err
	}
	return run(ctx, app, os.Args[1:])
}

// run executes one invocation and reports a returned error on app.Stderr.
func run(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(NormalizeArgs(args))

	err := root.ExecuteContext(ctx)
	if err != nil {
		reportError(app.Stderr, err)
	}
	app.waitForRefresh(refreshWait)
	return err
}

func reportError(w io.Writer, err error) {
	var invalid *InvalidCommandError
	if errors.As(err, &invalid) {
		fmt.Fprintln(w, color.Red.Sprint(invalid.Error()))
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.Red.Sprint("Error:"), err)
}
