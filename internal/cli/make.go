package cli

import (
	"fmt"
	"io"

	"github.com/maizzle/cli/internal/scaffold"
	"github.com/spf13/cobra"
)

func newMakeLayoutCmd(app *App) *cobra.Command {
	return newMakeFileCmd(app, scaffold.Layout, "make:layout [filename]", "Scaffold a new layout")
}

func newMakeTemplateCmd(app *App) *cobra.Command {
	return newMakeFileCmd(app, scaffold.Template, "make:template [filename]", "Scaffold a new template")
}

func newMakeTailwindCmd(app *App) *cobra.Command {
	return newMakeFileCmd(app, scaffold.Tailwind, "make:tailwind [filename]", "Scaffold a new Tailwind CSS config")
}

// newMakeFileCmd builds a make:* command that writes one file of kind k.
func newMakeFileCmd(app *App, k scaffold.Kind, use, short string) *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: fmt.Sprintf(`%s.

Without a filename the file is written to %s.
A filename containing a path is used relative to the current directory,
and --directory overrides where the file goes.`, short, k.DefaultFile),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := scaffold.Options{Root: app.WorkDir, Directory: directory}
			if len(args) > 0 {
				opts.Filename = args[0]
			}

			result, err := scaffold.Generate(k, opts)
			if err != nil {
				return err
			}
			printCreated(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Directory where the file should be output")
	return cmd
}

func newMakeConfigCmd(app *App) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "make:config [env]",
		Short: "Scaffold a new config file",
		Long: `Scaffold a config file for an environment.

  maizzle make:config                    # config.js
  maizzle make:config production --full  # config.production.js with every option`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := scaffold.DefaultEnv
			if len(args) > 0 {
				env = args[0]
			}

			result, err := scaffold.GenerateConfig(app.WorkDir, env, full)
			if err != nil {
				return err
			}
			printCreated(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&full, "full", "f", false, "Scaffold a full config with all options")
	return cmd
}

func printCreated(w io.Writer, r *scaffold.Result) {
	fmt.Fprintf(w, "Created %s at %s\n", r.Kind, r.Path)
}
