package cli

import (
	"context"
	"errors"

	"github.com/maizzle/cli/internal/framework"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		bin     string
		noClear bool
	)

	cmd := &cobra.Command{
		Use:   "serve [env]",
		Short: "Start a local development server",
		Long: `Start the framework's development server and rebuild on changes.
Runs until interrupted.

  maizzle serve
  maizzle serve production --noclear`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fw, err := resolveFramework(ctx, app, cmd, bin)
			if err == nil {
				err = fw.Serve(ctx, envArg(args), framework.NewServeConfig(noClear))
			}
			switch {
			case errors.Is(err, framework.ErrNotFound):
				printFrameworkNotFound(app.Stderr)
				return nil
			case errors.Is(err, context.Canceled):
				return nil
			}
			return err
		},
	}

	addBinFlag(cmd, &bin)
	cmd.Flags().BoolVar(&noClear, "noclear", false, "Do not clear the console log (alias -nc)")
	return cmd
}
