package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/maizzle/cli/internal/branding"
	"github.com/maizzle/cli/internal/config"
	"github.com/maizzle/cli/internal/ctxlog"
	"github.com/maizzle/cli/internal/framework"
	"github.com/maizzle/cli/internal/scaffold"
	"github.com/spf13/cobra"
)

func newBuildCmd(app *App) *cobra.Command {
	var bin string

	cmd := &cobra.Command{
		Use:   "build [env]",
		Short: "Build emails for an environment",
		Long: `Compile the project's templates with the framework installed in node_modules.

  maizzle build               # local environment
  maizzle build production
  maizzle build --bin ./vendor/framework/src`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env := envArg(args)

			fw, err := resolveFramework(ctx, app, cmd, bin)
			if err == nil {
				err = fw.Build(ctx, env)
			}
			if errors.Is(err, framework.ErrNotFound) {
				printFrameworkNotFound(app.Stderr)
				return nil
			}
			if err != nil {
				return err
			}

			app.runNotifier(ctx)
			return nil
		},
	}

	addBinFlag(cmd, &bin)
	return cmd
}

// addBinFlag registers -b/--bin. Given without a value it selects the
// default module location.
func addBinFlag(cmd *cobra.Command, bin *string) {
	cmd.Flags().StringVarP(bin, "bin", "b", "", "Path to the framework module")
	cmd.Flags().Lookup("bin").NoOptDefVal = branding.FrameworkEntry()
}

// resolveFramework picks the module path from --bin, then the bin setting,
// then the default location.
func resolveFramework(ctx context.Context, app *App, cmd *cobra.Command, bin string) (framework.Framework, error) {
	if !cmd.Flags().Changed("bin") {
		bin = config.Get(config.KeyBin)
	}
	ctxlog.FromContext(ctx).Debug("resolving framework module", "bin", bin, "dir", app.WorkDir)
	return app.Resolver.Resolve(ctx, bin)
}

func envArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return scaffold.DefaultEnv
}

func printFrameworkNotFound(w io.Writer) {
	fmt.Fprintln(w, color.Red.Sprint("Error: Framework not found"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Make sure to run this command in your %s project root, with dependencies installed.\n", branding.DisplayName())
}
