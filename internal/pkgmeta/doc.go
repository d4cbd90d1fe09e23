// Package pkgmeta reads npm package metadata (package.json) from a project's
// dependency tree. The version reporter uses it to find the installed
// framework version, and the update notifier uses it to learn what to compare
// against the registry.
package pkgmeta
