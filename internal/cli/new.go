package cli

import (
	"fmt"
	"path/filepath"

	"github.com/maizzle/cli/internal/branding"
	"github.com/maizzle/cli/internal/config"
	"github.com/maizzle/cli/internal/scaffold"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	var noDeps bool

	cmd := &cobra.Command{
		Use:   "new [repository] [path]",
		Short: "Create a new project from a starter",
		Long: `Clone a starter repository into a new directory and install its dependencies.

  maizzle new                          # default starter into ./maizzle
  maizzle new acme/email-starter       # GitHub owner/name shorthand
  maizzle new https://gitlab.com/acme/emails.git newsletter --no-deps`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := config.Get(config.KeyStarter)
			if repo == "" {
				repo = branding.StarterRepo()
			}
			if len(args) > 0 {
				repo = args[0]
			}

			path := scaffold.DefaultProjectPath(repo)
			if len(args) > 1 {
				path = args[1]
			}
			if !filepath.IsAbs(path) {
				path = filepath.Join(app.WorkDir, path)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Creating project from %s...\n", repo)

			dir, err := app.Projects.Create(cmd.Context(), scaffold.ProjectOptions{
				Repo:        repo,
				Path:        path,
				InstallDeps: !noDeps,
			})
			if err != nil {
				return fmt.Errorf("creating project: %w", err)
			}

			rel, err := filepath.Rel(app.WorkDir, dir)
			if err != nil {
				rel = dir
			}
			fmt.Fprintf(out, "\nCreated project at %s\n\nNext steps:\n", dir)
			fmt.Fprintf(out, "  cd %s\n", rel)
			if noDeps {
				fmt.Fprintln(out, "  npm install")
			}
			fmt.Fprintf(out, "  %s serve\n", branding.CLIName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&noDeps, "no-deps", "d", false, "Skip installing dependencies")
	return cmd
}
