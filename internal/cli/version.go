package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/maizzle/cli/internal/branding"
	"github.com/maizzle/cli/internal/pkgmeta"
)

// printVersion prints the framework version when the current project has one
// installed, followed by the CLI version.
func printVersion(w io.Writer, app *App) error {
	cliVersion := strings.TrimPrefix(app.Version, "v")

	pkg, err := pkgmeta.ReadFramework(app.WorkDir)
	if err != nil {
		fmt.Fprintf(w, "CLI v%s\n", cliVersion)
		fmt.Fprintf(w, "To see your Framework version, run this command in the root directory of a %s project.\n", branding.DisplayName())
		return nil
	}

	fmt.Fprintf(w, "Framework v%s\n", strings.TrimPrefix(pkg.Version, "v"))
	fmt.Fprintf(w, "CLI v%s\n", cliVersion)
	return nil
}
