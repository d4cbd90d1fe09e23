// Package cli defines the Cobra command tree for the maizzle CLI. The tree is
// built by NewRootCmd for every invocation from an App that carries the
// collaborators (framework resolver, project creator, update notifiers), so
// tests can run commands against fakes. Each file in this package contributes
// one command (new, make:*, build, serve, settings); command implementations
// delegate to internal packages for business logic and only handle flag
// parsing, I/O formatting, and user interaction.
package cli
