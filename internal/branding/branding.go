// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover a missing or partial file.
package branding

import (
	_ "embed"
	"path/filepath"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	HomeDir          string `yaml:"home_dir"`
	EnvPrefix        string `yaml:"env_prefix"`
	GitHubRepo       string `yaml:"github_repo"`
	FrameworkPackage string `yaml:"framework_package"`
	FrameworkEntry   string `yaml:"framework_entry"`
	StarterRepo      string `yaml:"starter_repo"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:          "maizzle",
			DisplayName:      "Maizzle",
			Description:      "Quickly build HTML emails with Tailwind CSS",
			HomeDir:          ".maizzle",
			EnvPrefix:        "MAIZZLE",
			GitHubRepo:       "maizzle/cli",
			FrameworkPackage: "@maizzle/framework",
			FrameworkEntry:   "src",
			StarterRepo:      "maizzle/maizzle",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "maizzle").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Maizzle").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".maizzle").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "MAIZZLE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of the CLI itself.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// FrameworkPackage returns the npm package name of the delegated framework.
func FrameworkPackage() string { load(); return defaults.FrameworkPackage }

// StarterRepo returns the repository cloned by "new" when none is given.
func StarterRepo() string { load(); return defaults.StarterRepo }

// FrameworkDir returns the framework's install directory relative to a
// project root: node_modules/<package>.
func FrameworkDir() string {
	load()
	return filepath.Join(append([]string{"node_modules"}, strings.Split(defaults.FrameworkPackage, "/")...)...)
}

// FrameworkEntry returns the default module path, relative to a project
// root, that build and serve load.
func FrameworkEntry() string {
	load()
	return filepath.Join(FrameworkDir(), defaults.FrameworkEntry)
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "MAIZZLE_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
