package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultCheckTimeout bounds a blocking registry lookup.
const DefaultCheckTimeout = 3 * time.Second

// Updater checks one Source against an installed version.
type Updater struct {
	currentVersion string
	source         Source
	httpClient     *http.Client
	configDir      string
	timeout        time.Duration
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithTimeout overrides DefaultCheckTimeout.
func WithTimeout(d time.Duration) Option {
	return func(u *Updater) {
		u.timeout = d
	}
}

// New creates an Updater for the installed currentVersion of src. Results are
// cached under configDir.
func New(currentVersion string, src Source, configDir string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		source:         src,
		httpClient:     http.DefaultClient,
		configDir:      configDir,
		timeout:        DefaultCheckTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Check queries the source and stores the result in the cache.
func (u *Updater) Check(ctx context.Context) (*VersionCache, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	latest, err := u.source.Latest(ctx, u.httpClient)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", u.source.Key(), err)
	}

	available, err := IsUpdateAvailable(u.currentVersion, latest)
	if err != nil {
		return nil, err
	}

	cache := &VersionCache{
		LatestVersion:   latest,
		CurrentVersion:  u.currentVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	}
	if err := SaveCache(u.configDir, u.source.Key(), cache); err != nil {
		return cache, err
	}
	return cache, nil
}

// Notify prints an update banner to w when a newer version exists. It uses
// the cache when fresh and queries the source otherwise. Callers treat the
// returned error as informational.
func (u *Updater) Notify(ctx context.Context, w io.Writer) error {
	cache, err := LoadCache(u.configDir, u.source.Key())
	if err != nil || IsCacheStale(cache, u.currentVersion, DefaultCacheMaxAge) {
		cache, err = u.Check(ctx)
		if cache == nil {
			return err
		}
	}

	if cache.UpdateAvailable {
		PrintUpdateBanner(w, u.source, cache.CurrentVersion, cache.LatestVersion)
	}
	return err
}

// PrintCachedBanner prints a banner from the cache only. It never touches
// the network.
func (u *Updater) PrintCachedBanner(w io.Writer) {
	cache, err := LoadCache(u.configDir, u.source.Key())
	if err != nil || cache == nil {
		return
	}
	if cache.UpdateAvailable && cache.CurrentVersion == u.currentVersion {
		PrintUpdateBanner(w, u.source, cache.CurrentVersion, cache.LatestVersion)
	}
}

// RefreshIfStale starts a Check in the background when the cache is missing
// or stale. The returned channel is closed once the check has finished, or
// right away when no check was needed. Callers wait on it before exiting so
// the result reaches the cache.
func (u *Updater) RefreshIfStale(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	cache, err := LoadCache(u.configDir, u.source.Key())
	if err == nil && !IsCacheStale(cache, u.currentVersion, DefaultCacheMaxAge) {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		_, _ = u.Check(context.WithoutCancel(ctx))
	}()
	return done
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, src Source, current, latest string) {
	fmt.Fprintf(w, "\nUpdate available for %s: %s -> %s\n", src.Key(), current, latest)
	fmt.Fprintf(w, "    %s\n\n", src.UpgradeHint())
}
