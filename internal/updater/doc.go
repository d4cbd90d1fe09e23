// Package updater implements best-effort update notifications. A Source
// reports the latest published version of something (the framework on the npm
// registry, the CLI on GitHub Releases); the Updater compares it with the
// installed version using semver and caches the result for a day so most
// invocations never touch the network.
package updater
